// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/altheris/teasergate/pkg/gatebot/sharetoken"
)

// GateDecision is the terminal state of one access-gate evaluation.
type GateDecision int

const (
	// DecisionJoin prompts the user to join the gating channel, with a
	// retry affordance that re-enters the gate.
	DecisionJoin GateDecision = iota
	// DecisionCatalog confirms membership when no content was requested.
	DecisionCatalog
	// DecisionInvalid rejects a malformed share token.
	DecisionInvalid
	// DecisionDeliver grants retrieval of one content item.
	DecisionDeliver
)

func (d GateDecision) String() string {
	switch d {
	case DecisionJoin:
		return "join"
	case DecisionCatalog:
		return "catalog"
	case DecisionInvalid:
		return "invalid"
	case DecisionDeliver:
		return "deliver"
	default:
		return "unknown"
	}
}

// GateResult carries the decision and, for DecisionDeliver, the decoded
// source message id.
type GateResult struct {
	Decision  GateDecision
	MessageID int64
}

// AccessGate decides what a user gets for a start command or a retry
// press. It holds no per-user state: membership is re-checked on every
// evaluation and the token is examined only after membership holds, so a
// non-member never learns whether their token was valid.
type AccessGate struct {
	membership MembershipChecker
	log        zerolog.Logger
}

// NewAccessGate constructs the gate on a membership checker.
func NewAccessGate(membership MembershipChecker, log zerolog.Logger) *AccessGate {
	return &AccessGate{
		membership: membership,
		log:        log.With().Str("component", "gate").Logger(),
	}
}

// Evaluate runs the state machine for one request. rawToken is empty for
// bare start commands and for retry presses, which carry no payload.
func (g *AccessGate) Evaluate(ctx context.Context, userID int64, rawToken string) GateResult {
	if g.membership.CheckMembership(ctx, userID) != MembershipMember {
		g.log.Debug().Int64("user_id", userID).Msg("Not a member, prompting to join")
		return GateResult{Decision: DecisionJoin}
	}

	if rawToken == "" {
		return GateResult{Decision: DecisionCatalog}
	}

	id, err := sharetoken.Decode(rawToken)
	if err != nil {
		g.log.Debug().Err(err).
			Int64("user_id", userID).
			Msg("Rejecting malformed share token")
		return GateResult{Decision: DecisionInvalid}
	}
	return GateResult{Decision: DecisionDeliver, MessageID: id}
}
