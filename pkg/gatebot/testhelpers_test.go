// Copyright 2026 Altheris Labs
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gatebot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// testConfig returns a fully valid configuration for handler tests.
func testConfig() *Config {
	return &Config{
		BotToken:      "test-token",
		SourceChannel: -1001111,
		TargetChannel: -1002222,
		MainChannelID: -1003333,
		BotUsername:   "teasergate_bot",
		DefaultImage:  "image-file-id",
		ChannelLink:   "https://t.me/testchannel",
		PollTimeout:   30,
	}
}

// mockTelegram implements telegramAPI in memory and records every
// outbound call for assertions.
type mockTelegram struct {
	mu            sync.Mutex
	sent          []tgbotapi.Chattable
	requested     []tgbotapi.Chattable
	copies        []tgbotapi.CopyMessageConfig
	memberLookups int
	stopped       bool

	// members marks which user ids count as main-channel members.
	members    map[int64]bool
	memberErr  error
	copyErr    error
	forwardErr error
	updates    chan tgbotapi.Update
}

func newMockTelegram() *mockTelegram {
	return &mockTelegram{
		members: make(map[int64]bool),
		updates: make(chan tgbotapi.Update, 8),
	}
}

func (m *mockTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	if _, ok := c.(tgbotapi.ForwardConfig); ok && m.forwardErr != nil {
		return tgbotapi.Message{}, m.forwardErr
	}
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func (m *mockTelegram) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requested = append(m.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (m *mockTelegram) CopyMessage(config tgbotapi.CopyMessageConfig) (tgbotapi.MessageID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.copies = append(m.copies, config)
	if m.copyErr != nil {
		return tgbotapi.MessageID{}, m.copyErr
	}
	return tgbotapi.MessageID{MessageID: 99}, nil
}

func (m *mockTelegram) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memberLookups++
	if m.memberErr != nil {
		return tgbotapi.ChatMember{}, m.memberErr
	}
	if m.members[config.UserID] {
		return tgbotapi.ChatMember{Status: "member"}, nil
	}
	return tgbotapi.ChatMember{Status: "left"}, nil
}

func (m *mockTelegram) GetUpdatesChan(_ tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return m.updates
}

func (m *mockTelegram) StopReceivingUpdates() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *mockTelegram) sentCalls() []tgbotapi.Chattable {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]tgbotapi.Chattable, len(m.sent))
	copy(cp, m.sent)
	return cp
}

func (m *mockTelegram) copyCalls() []tgbotapi.CopyMessageConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]tgbotapi.CopyMessageConfig, len(m.copies))
	copy(cp, m.copies)
	return cp
}

func (m *mockTelegram) lookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.memberLookups
}

func testBot(m *mockTelegram) *Bot {
	return New(m, testConfig(), zerolog.Nop())
}

// endpointCall records which Bot API endpoints were hit during a test.
type endpointCall struct {
	Method string
	Params url.Values
}

// fakeTG wraps an httptest.Server speaking the Bot API wire format. It
// records calls and serves canned responses, so the real client library
// can be exercised end to end.
type fakeTG struct {
	Server *httptest.Server

	mu    sync.Mutex
	calls []endpointCall

	// MemberStatus is returned by getChatMember; MemberFail makes the
	// lookup return an API error instead.
	MemberStatus   string
	MemberIsMember bool
	MemberFail     bool
	CopyFail       bool
	ForwardFail    bool
}

func newFakeTG(t *testing.T) *fakeTG {
	t.Helper()
	f := &fakeTG{MemberStatus: "member"}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// Client returns a real Bot API client pointed at the fake server.
func (f *fakeTG) Client(t *testing.T) *tgbotapi.BotAPI {
	t.Helper()
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint("test-token", f.Server.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("failed to create client against fake server: %v", err)
	}
	return bot
}

func (f *fakeTG) handle(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	f.mu.Lock()
	f.calls = append(f.calls, endpointCall{Method: method, Params: r.Form})
	memberStatus, memberIsMember := f.MemberStatus, f.MemberIsMember
	memberFail, copyFail, forwardFail := f.MemberFail, f.CopyFail, f.ForwardFail
	f.mu.Unlock()

	switch method {
	case "getMe":
		writeResult(w, map[string]any{
			"id": 1, "is_bot": true, "first_name": "Teaser", "username": "teasergate_bot",
		})
	case "getChatMember":
		if memberFail {
			writeAPIError(w, "Bad Request: user not found")
			return
		}
		writeResult(w, map[string]any{
			"status":    memberStatus,
			"is_member": memberIsMember,
			"user":      map[string]any{"id": 7, "is_bot": false, "first_name": "U"},
		})
	case "copyMessage":
		if copyFail {
			writeAPIError(w, "Bad Request: message to copy not found")
			return
		}
		writeResult(w, map[string]any{"message_id": 99})
	case "forwardMessage":
		if forwardFail {
			writeAPIError(w, "Bad Request: message to forward not found")
			return
		}
		writeResult(w, map[string]any{"message_id": 100, "date": 0, "chat": map[string]any{"id": 1}})
	case "sendMessage", "sendPhoto":
		writeResult(w, map[string]any{"message_id": 101, "date": 0, "chat": map[string]any{"id": 1}})
	case "answerCallbackQuery":
		writeResult(w, true)
	default:
		writeAPIError(w, "Not Found: method "+method)
	}
}

func (f *fakeTG) Calls() []endpointCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]endpointCall, len(f.calls))
	copy(cp, f.calls)
	return cp
}

// CallsTo filters recorded calls by method name.
func (f *fakeTG) CallsTo(method string) []endpointCall {
	var out []endpointCall
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func writeTestFile(path string) error {
	return os.WriteFile(path, []byte("not really a jpeg"), 0o600)
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "result": result})
}

func writeAPIError(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok": false, "error_code": 400, "description": description,
	})
}
