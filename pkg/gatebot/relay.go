// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	"context"
	"fmt"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/altheris/teasergate/pkg/gatebot/sharetoken"
	"github.com/altheris/teasergate/pkg/gatebot/teaserfmt"
)

// relayAPI is the slice of the Bot API client the relay needs.
type relayAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error)
}

// Relay publishes teasers for new source posts and delivers originals to
// verified requesters.
type Relay struct {
	api relayAPI
	cfg *Config
	log zerolog.Logger
}

// NewRelay constructs a Relay on an authenticated API client.
func NewRelay(api relayAPI, cfg *Config, log zerolog.Logger) *Relay {
	return &Relay{
		api: api,
		cfg: cfg,
		log: log.With().Str("component", "relay").Logger(),
	}
}

// PublishTeaser mirrors one source post into the target channel: caption
// stripped of links, deep link minted from the message id, default image
// attached. No deduplication happens here; a duplicate source event
// publishes a duplicate teaser.
func (r *Relay) PublishTeaser(_ context.Context, messageID int, caption string) error {
	if messageID <= 0 {
		return fmt.Errorf("publish teaser: non-positive message id %d", messageID)
	}
	token := sharetoken.Encode(int64(messageID))
	teaser := teaserfmt.BuildTeaser(caption, teaserfmt.DeepLink(r.cfg.BotUsername, token))

	photo := tgbotapi.NewPhoto(r.cfg.TargetChannel, imageFile(r.cfg.DefaultImage))
	photo.Caption = teaser
	photo.ParseMode = tgbotapi.ModeHTML

	if _, err := r.api.Send(photo); err != nil {
		return fmt.Errorf("publish teaser for message %d: %w", messageID, err)
	}
	r.log.Info().Int("message_id", messageID).Msg("Published teaser")
	return nil
}

// DeliverOriginal copies the original source message into the requester's
// chat. copyMessage is tried first; forwardMessage is the documented
// fallback. Both failing is logged and reported as false — the caller
// never sees the underlying cause.
func (r *Relay) DeliverOriginal(_ context.Context, chatID int64, messageID int64) bool {
	cp := tgbotapi.NewCopyMessage(chatID, r.cfg.SourceChannel, int(messageID))
	_, err := r.api.CopyMessage(cp)
	if err == nil {
		return true
	}
	r.log.Warn().Err(err).
		Int64("chat_id", chatID).
		Int64("message_id", messageID).
		Msg("copyMessage failed, falling back to forward")

	fwd := tgbotapi.NewForward(chatID, r.cfg.SourceChannel, int(messageID))
	if _, err := r.api.Send(fwd); err != nil {
		r.log.Error().Err(err).
			Int64("chat_id", chatID).
			Int64("message_id", messageID).
			Msg("Both delivery mechanisms failed")
		return false
	}
	return true
}

// imageFile resolves the configured default image reference: an existing
// file is uploaded, an http(s) URL is passed by reference, anything else
// is treated as a Telegram file id.
func imageFile(ref string) tgbotapi.RequestFileData {
	if _, err := os.Stat(ref); err == nil {
		return tgbotapi.FilePath(ref)
	}
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return tgbotapi.FileURL(ref)
	}
	return tgbotapi.FileID(ref)
}
