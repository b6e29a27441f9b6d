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

// MembershipStatus is the tri-state result of a membership lookup.
type MembershipStatus int

const (
	// MembershipUnknown means the lookup could not be completed. The gate
	// treats it exactly like MembershipNotMember.
	MembershipUnknown MembershipStatus = iota
	MembershipNotMember
	MembershipMember
)

func (s MembershipStatus) String() string {
	switch s {
	case MembershipMember:
		return "member"
	case MembershipNotMember:
		return "not-member"
	default:
		return "unknown"
	}
}

// MembershipChecker reports whether a user belongs to the gating channel.
// Implementations must re-query on every call; membership can change
// between attempts and the retry button exists to force re-evaluation.
type MembershipChecker interface {
	CheckMembership(ctx context.Context, userID int64) MembershipStatus
}

// chatMemberAPI is the slice of the Bot API client the membership checker
// needs. Narrow on purpose so tests can inject a stub.
type chatMemberAPI interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// channelMembership queries getChatMember against the main channel. Every
// failure mode (network error, user never seen, bot lacking permission,
// channel not found) is collapsed to not-a-member: the gate denies under
// uncertainty.
type channelMembership struct {
	api       chatMemberAPI
	channelID int64
	log       zerolog.Logger
}

func newChannelMembership(api chatMemberAPI, channelID int64, log zerolog.Logger) *channelMembership {
	return &channelMembership{
		api:       api,
		channelID: channelID,
		log:       log.With().Str("component", "membership").Logger(),
	}
}

func (c *channelMembership) CheckMembership(_ context.Context, userID int64) MembershipStatus {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: c.channelID,
			UserID: userID,
		},
	})
	if err != nil {
		c.log.Warn().Err(err).
			Int64("user_id", userID).
			Msg("Membership lookup failed, treating as non-member")
		return MembershipNotMember
	}

	switch member.Status {
	case "creator", "administrator", "member":
		return MembershipMember
	case "restricted":
		// Restricted users are still in the channel when IsMember is set.
		if member.IsMember {
			return MembershipMember
		}
		return MembershipNotMember
	default: // "left", "kicked", or anything Telegram adds later
		return MembershipNotMember
	}
}
