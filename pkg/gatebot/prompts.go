// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// retryCallbackData is the stateless action id carried by the retry
// button. It has no payload; pressing it re-runs the membership check.
const retryCallbackData = "retry"

const (
	joinPromptText = "✨ *Hold on*\n\n" +
		"You haven't joined the required channel yet.\n" +
		"Join first, then hit retry to unlock the content."

	catalogPromptText = "✅ You're in!\n\n" +
		"Pick anything from the *channel catalog*."

	invalidParamText = "Invalid parameter."

	contentUnavailableText = "That content is currently unavailable."
)

// joinPrompt builds the gating message: informational text plus a join
// link and a retry button that re-enters the gate.
func joinPrompt(chatID int64, channelLink string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, joinPromptText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔐 Join the channel", channelLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Retry", retryCallbackData),
		),
	)
	return msg
}

// catalogPrompt builds the confirmed-member message with a link to the
// channel catalog. No content is forwarded from here.
func catalogPrompt(chatID int64, channelLink string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, catalogPromptText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📜 Channel catalog", channelLink),
		),
	)
	return msg
}
