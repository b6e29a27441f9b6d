// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gatebot implements a join-gated Telegram teaser relay: posts
// from a private source channel are mirrored into a public channel as
// link-stripped teasers carrying a deep link, and resolving that link
// hands over the original content only to verified members of a main
// channel.
//
// # Core Types
//
// [Bot] owns the update loop and dispatches each incoming event — start
// commands, retry callbacks, channel posts — to completion before taking
// the next.
//
// [AccessGate] is the join-gated state machine. Membership is re-queried
// on every entry and the share token is only examined after membership is
// confirmed, so a non-member never learns whether a token was valid.
//
// [Relay] publishes teasers for new source posts and copies originals to
// verified requesters, with a forward fallback when copying fails.
//
// # Fail-closed Gating
//
// Any failure of the membership lookup — network error, user never seen,
// missing bot permission — is normalized to not-a-member inside the
// checker. Uncertainty always maps to a join prompt, never to an error
// surface or a grant.
//
// # Sub-packages
//
//   - sharetoken mints and strictly decodes the deep-link tokens.
//   - teaserfmt strips link noise and composes teaser captions.
package gatebot
