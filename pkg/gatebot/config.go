// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed example-config.yaml
var ExampleConfig string

// Config holds the fixed identifiers and credentials the bot runs with.
// Everything here is read once at startup and immutable afterwards; the
// same value is injected into every component that needs it.
type Config struct {
	BotToken string `yaml:"bot_token" env:"BOT_TOKEN"`
	// SourceChannel is the private channel full content originates from.
	SourceChannel int64 `yaml:"source_channel" env:"SOURCE_CHANNEL"`
	// TargetChannel is the public channel teasers are published to.
	TargetChannel int64 `yaml:"target_channel" env:"TARGET_CHANNEL"`
	// MainChannelID is the channel membership in which unlocks retrieval.
	MainChannelID int64 `yaml:"main_channel_id" env:"MAIN_CHANNEL_ID"`
	// BotUsername is the public entry-point name used in deep links,
	// without the leading @.
	BotUsername string `yaml:"bot_username" env:"BOT_USERNAME"`
	// DefaultImage is the teaser illustration: a local file path, an
	// HTTP(S) URL, or a Telegram file id.
	DefaultImage string `yaml:"default_image" env:"DEFAULT_IMAGE" envDefault:"foto.jpg"`
	// ChannelLink is the public URL of the gating channel, used by the
	// join and catalog buttons.
	ChannelLink string `yaml:"channel_link" env:"CHANNEL_LINK"`
	// StatusAddr is the listen address for the health endpoint. Empty
	// disables it.
	StatusAddr string `yaml:"status_addr" env:"STATUS_ADDR"`
	// PollTimeout is the update long-poll timeout in seconds.
	PollTimeout int `yaml:"poll_timeout" env:"POLL_TIMEOUT" envDefault:"30"`
}

// LoadConfig reads configuration from path (YAML) when path is non-empty,
// otherwise from the environment. A .env file in the working directory is
// loaded into the environment first when present. Validation failures are
// returned as errors and must be fatal: the service never starts with an
// incomplete configuration.
func LoadConfig(path string) (*Config, error) {
	// Best effort: a missing .env file is the normal deployed case.
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		cfg.DefaultImage = "foto.jpg"
		cfg.PollTimeout = 30
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	} else if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes and checks every required value.
func (c *Config) Validate() error {
	c.BotToken = strings.TrimSpace(c.BotToken)
	c.BotUsername = strings.TrimPrefix(strings.TrimSpace(c.BotUsername), "@")
	c.ChannelLink = strings.TrimSpace(c.ChannelLink)
	c.DefaultImage = strings.TrimSpace(c.DefaultImage)

	if c.BotToken == "" {
		return errors.New("config: BOT_TOKEN is required")
	}
	if c.SourceChannel == 0 {
		return errors.New("config: SOURCE_CHANNEL is required")
	}
	if c.TargetChannel == 0 {
		return errors.New("config: TARGET_CHANNEL is required")
	}
	if c.MainChannelID == 0 {
		return errors.New("config: MAIN_CHANNEL_ID is required")
	}
	if c.BotUsername == "" {
		return errors.New("config: BOT_USERNAME is required")
	}
	if c.ChannelLink == "" {
		return errors.New("config: CHANNEL_LINK is required")
	}
	if !strings.HasPrefix(c.ChannelLink, "https://") && !strings.HasPrefix(c.ChannelLink, "http://") {
		return fmt.Errorf("config: CHANNEL_LINK must be an http(s) URL, got %q", c.ChannelLink)
	}
	if c.DefaultImage == "" {
		return errors.New("config: DEFAULT_IMAGE must not be blank")
	}
	if c.PollTimeout <= 0 {
		return fmt.Errorf("config: POLL_TIMEOUT must be positive, got %d", c.PollTimeout)
	}
	return nil
}
