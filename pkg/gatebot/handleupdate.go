// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleUpdate dispatches one update to the matching handler. Updates
// that are neither a source-channel post, a /start command, nor a retry
// callback are dropped.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.ChannelPost != nil:
		b.handleChannelPost(ctx, update.ChannelPost)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand() && update.Message.Command() == "start":
		b.handleStart(ctx, update.Message)
	default:
		b.log.Trace().Int("update_id", update.UpdateID).Msg("Ignoring unrelated update")
	}
}

// handleChannelPost mirrors a new source-channel post as a teaser. Posts
// originating anywhere else are dropped silently.
func (b *Bot) handleChannelPost(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != b.cfg.SourceChannel {
		b.log.Trace().Msg("Dropping post from unrelated channel")
		return
	}

	caption := msg.Caption
	if caption == "" {
		caption = msg.Text
	}
	if err := b.relay.PublishTeaser(ctx, msg.MessageID, caption); err != nil {
		b.log.Error().Err(err).
			Int("message_id", msg.MessageID).
			Msg("Failed to publish teaser")
	}
}

// handleStart runs the access gate for a /start command, with or without
// a share-token argument.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	result := b.gate.Evaluate(ctx, msg.From.ID, strings.TrimSpace(msg.CommandArguments()))
	b.respond(ctx, msg.Chat.ID, result)
}

// handleCallback processes a retry press from the join prompt. The
// callback is acknowledged before the membership re-check so the client
// spinner clears even when the user still has not joined. Retry carries
// no token, so a confirmed member lands on the catalog prompt.
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Data != retryCallbackData || query.From == nil || query.Message == nil || query.Message.Chat == nil {
		return
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn().Err(err).Msg("Failed to answer callback query")
	}

	result := b.gate.Evaluate(ctx, query.From.ID, "")
	b.respond(ctx, query.Message.Chat.ID, result)
}

// respond converts a gate decision into the outgoing message. Every
// per-event failure ends here as one of a fixed set of user-facing
// outcomes; no internal detail leaks.
func (b *Bot) respond(ctx context.Context, chatID int64, result GateResult) {
	switch result.Decision {
	case DecisionJoin:
		b.send(joinPrompt(chatID, b.cfg.ChannelLink))
	case DecisionCatalog:
		b.send(catalogPrompt(chatID, b.cfg.ChannelLink))
	case DecisionInvalid:
		b.send(tgbotapi.NewMessage(chatID, invalidParamText))
	case DecisionDeliver:
		if !b.relay.DeliverOriginal(ctx, chatID, result.MessageID) {
			b.send(tgbotapi.NewMessage(chatID, contentUnavailableText))
		}
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Warn().Err(err).Msg("Failed to send message")
	}
}
