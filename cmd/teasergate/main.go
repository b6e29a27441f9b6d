// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Command teasergate mirrors posts from a private source channel into a
// public teaser channel, replacing each post with a link-stripped caption
// and a deep link. Resolving the deep link hands over the original
// content, but only to verified members of the main channel.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/altheris/teasergate/pkg/gatebot"
)

// These are filled at build time with -ldflags.
var (
	Tag       = "unknown"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: environment)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := gatebot.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Configuration error")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to authenticate with Telegram")
	}
	log.Info().
		Str("username", api.Self.UserName).
		Str("version", Tag).
		Str("commit", Commit).
		Msg("Bot authenticated")

	if cfg.StatusAddr != "" {
		go serveStatus(cfg.StatusAddr, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := gatebot.New(api, cfg, log)
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Update loop terminated")
	}
	log.Info().Msg("Shut down")
}

// serveStatus exposes a minimal health endpoint for deployment probes.
func serveStatus(addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("Starting status endpoint")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Status endpoint error")
	}
}
