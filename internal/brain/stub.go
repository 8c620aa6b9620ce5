// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package brain wraps the language-model, STT, and TTS provider calls.
package brain

import (
	"context"
	"fmt"

	"github.com/morganforge/alfred/internal/memory"
)

// StubProvider is the dev-mode fallback when no API key is configured.
// Everything stays wired end to end without any network call or cost, which
// also makes the chat path fully offline-testable.
type StubProvider struct {
	opts Options
}

// NewStubProvider creates the dev-mode provider.
func NewStubProvider(opts Options) *StubProvider {
	return &StubProvider{opts: opts}
}

// Chat synthesizes a deterministic echo reply. Identical input against the
// same history always produces the same text.
func (p *StubProvider) Chat(ctx context.Context, message string, history []memory.Turn, businessContext string) (string, error) {
	reply := fmt.Sprintf("(DEV MODE) I received: %q. No real AI call is made yet.", message)
	if businessContext != "" {
		reply += "\n\n(Business context loaded.)"
	}
	return reply, nil
}

// Transcribe honors the mock switch, otherwise reports the missing credential.
func (p *StubProvider) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	if p.opts.MockTranscription {
		return MockTranscript, nil
	}
	return "", ErrNoCredential
}

// Speak returns empty audio; the client falls back to local speech synthesis.
func (p *StubProvider) Speak(ctx context.Context, text, voice, format string) ([]byte, error) {
	return nil, nil
}
