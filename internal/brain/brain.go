// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package brain wraps the language-model, STT, and TTS provider calls.
package brain

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/morganforge/alfred/internal/memory"
)

// =============================================================================
// CONSTANTS AND ERRORS
// =============================================================================

const (
	// DefaultModel is the chat completion model.
	DefaultModel = openai.GPT4oMini

	// DefaultSystemPrompt is used when no override is configured.
	DefaultSystemPrompt = "You are Alfred, an AI assistant."

	// DefaultVoice is the TTS voice when the request does not name one.
	DefaultVoice = "alloy"

	// DefaultAudioFormat is the TTS output format.
	DefaultAudioFormat = "mp3"

	// MaxHistoryTurns bounds how many past turns are replayed into the
	// model prompt. Bounds prompt cost, not what is stored.
	MaxHistoryTurns = 10

	// chatTemperature matches the tuned production setting.
	chatTemperature = 0.4

	// MockTranscript is the canned STT result when mock transcription is on.
	MockTranscript = "Mock transcript (MOCK_MODE=true)."
)

// ErrNoCredential reports an STT request that needs a remote provider while
// none is configured.
var ErrNoCredential = errors.New("OpenAI API key not configured")

// contextPreamble introduces the injected business data to the model.
const contextPreamble = "Here is up-to-date structured data about the business. " +
	"Use this as ground truth for staff, warehouses, and stores when relevant."

// =============================================================================
// PROVIDER INTERFACE
// =============================================================================

// Provider is the strategy interface over the remote model capabilities.
// Exactly one implementation is selected at composition time: LiveProvider
// when an API key is configured, StubProvider otherwise.
type Provider interface {
	// Chat produces a reply to message given the recent history and the
	// rendered business context. Remote failures propagate to the caller.
	Chat(ctx context.Context, message string, history []memory.Turn, businessContext string) (string, error)

	// Transcribe converts audio bytes to text. Remote failures are logged
	// at this boundary and returned as an error the transport layer turns
	// into an explicit error payload.
	Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error)

	// Speak converts text to audio bytes. Failures and missing credentials
	// both yield empty audio, signalling the client to fall back to local
	// speech synthesis.
	Speak(ctx context.Context, text, voice, format string) ([]byte, error)
}

// Options configures either provider implementation.
type Options struct {
	// SystemPrompt overrides DefaultSystemPrompt when non-empty.
	SystemPrompt string

	// Model overrides DefaultModel when non-empty.
	Model string

	// MockTranscription makes Transcribe return MockTranscript without any
	// remote call, in either mode. Checked before credentials.
	MockTranscription bool
}

func (o Options) systemPrompt() string {
	if o.SystemPrompt != "" {
		return o.SystemPrompt
	}
	return DefaultSystemPrompt
}

func (o Options) model() string {
	if o.Model != "" {
		return o.Model
	}
	return DefaultModel
}

// =============================================================================
// PROMPT ASSEMBLY
// =============================================================================

// buildMessages assembles the chat completion payload: system prompt, the
// last MaxHistoryTurns turns as alternating user/assistant entries, an
// optional business-context system message, then the new user message.
func buildMessages(systemPrompt string, history []memory.Turn, businessContext, message string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, 2*len(history)+3)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	start := 0
	if len(history) > MaxHistoryTurns {
		start = len(history) - MaxHistoryTurns
	}
	for _, turn := range history[start:] {
		msgs = append(msgs,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.User},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.Alfred},
		)
	}

	if businessContext != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: contextPreamble + "\n\n" + businessContext,
		})
	}

	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return msgs
}
