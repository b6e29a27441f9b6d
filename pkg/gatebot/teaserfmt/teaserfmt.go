// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package teaserfmt strips link noise from source captions and composes
// the public teaser caption with its deep link.
package teaserfmt

import (
	"html"
	"regexp"
	"strings"
)

var linkRe = regexp.MustCompile(`https?://\S+`)

// RemoveLinks deletes every http(s) URL from text and trims surrounding
// whitespace from the result. Empty input passes through unchanged.
func RemoveLinks(text string) string {
	if text == "" {
		return text
	}
	return strings.TrimSpace(linkRe.ReplaceAllString(text, ""))
}

// DeepLink builds the shareable start URL for a token.
func DeepLink(botUsername, token string) string {
	return "https://t.me/" + botUsername + "?start=" + token
}

// BuildTeaser composes the public caption: the link-stripped source
// caption followed by the call-to-action block. The caption part is
// HTML-escaped, since teasers are sent with HTML parse mode.
func BuildTeaser(caption, deepLink string) string {
	var b strings.Builder
	if clean := RemoveLinks(caption); clean != "" {
		b.WriteString(html.EscapeString(clean))
		b.WriteString("\n\n")
	}
	b.WriteString("👉 <b>Open the full post:</b>\n")
	b.WriteString(deepLink)
	return b.String()
}
