// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sharetoken converts source-channel message ids into opaque,
// URL-safe share tokens and strictly back. Tokens are self-describing:
// there is no token store, so the tagged payload is the only integrity
// check and decoding rejects any deviation from the canonical form.
package sharetoken

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// tag prefixes every payload so arbitrary base64 strings that happen to
// decode cleanly are still rejected.
const tag = "get-"

// ErrInvalidToken is returned by Decode for any input that is not the
// canonical encoding of a positive message id.
var ErrInvalidToken = errors.New("invalid share token")

// Encode converts a message id into a URL-safe share token. The id must
// be positive; callers validate before reaching the codec. Encode is
// deterministic, so re-publishing the same content yields the same token.
func Encode(messageID int64) string {
	return base64.URLEncoding.EncodeToString([]byte(tag + strconv.FormatInt(messageID, 10)))
}

// Decode parses a token produced by Encode. It fails with a
// [ErrInvalidToken]-wrapped error unless the input is exactly the
// canonical encoding of "get-<id>" with a positive decimal id: a wrong
// alphabet, bad padding, a missing tag, a malformed or non-positive
// number, and non-canonical renderings of a valid id (leading zeros,
// sign characters) are all rejected.
func Decode(token string) (int64, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	num, ok := strings.CutPrefix(string(raw), tag)
	if !ok {
		return 0, fmt.Errorf("%w: missing payload tag", ErrInvalidToken)
	}
	id, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed id %q", ErrInvalidToken, num)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: non-positive id %d", ErrInvalidToken, id)
	}
	// Canonical-form check: "get-07" and "get-+7" parse to valid ids but
	// are not encodings this package ever produced.
	if Encode(id) != token {
		return 0, fmt.Errorf("%w: non-canonical encoding", ErrInvalidToken)
	}
	return id, nil
}
