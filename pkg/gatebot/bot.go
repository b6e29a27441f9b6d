// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// telegramAPI is the slice of the Bot API client the bot uses. Narrow on
// purpose: tests swap in a recorder. *tgbotapi.BotAPI satisfies it.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var _ telegramAPI = (*tgbotapi.BotAPI)(nil)

// Bot wires the access gate, the relay pipeline, and the membership
// checker to the Telegram update stream. It keeps no per-event state;
// the only shared values are the immutable Config identifiers.
type Bot struct {
	api   telegramAPI
	cfg   *Config
	gate  *AccessGate
	relay *Relay
	log   zerolog.Logger
}

// New constructs a Bot on an authenticated API client.
func New(api telegramAPI, cfg *Config, log zerolog.Logger) *Bot {
	membership := newChannelMembership(api, cfg.MainChannelID, log)
	return &Bot{
		api:   api,
		cfg:   cfg,
		gate:  NewAccessGate(membership, log),
		relay: NewRelay(api, cfg, log),
		log:   log.With().Str("component", "bot").Logger(),
	}
}

// Run consumes updates until ctx is cancelled. Each update is handled to
// completion before the next one is taken; there is no queue and nothing
// to cancel once an event's external calls are in flight.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	u.AllowedUpdates = []string{"message", "channel_post", "callback_query"}

	updates := b.api.GetUpdatesChan(u)
	b.log.Info().
		Int64("source_channel", b.cfg.SourceChannel).
		Int64("target_channel", b.cfg.TargetChannel).
		Int64("main_channel", b.cfg.MainChannelID).
		Msg("Update loop started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}
