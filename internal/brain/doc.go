// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package brain wraps the language-model, STT, and TTS provider calls.
//
// Provider is a two-variant strategy selected once at startup: LiveProvider
// talks to the OpenAI API (chat completions, Whisper transcription, speech
// synthesis); StubProvider is the zero-cost dev-mode fallback used when no
// API key is configured.
//
// # Failure Semantics
//
//   - Chat: remote failures propagate to the orchestrator; the transport
//     layer converts them into an error-text reply.
//   - Transcribe: failures are logged here and surfaced as an error that the
//     transport layer converts into an explicit error payload.
//   - Speak: failures and missing credentials both yield empty audio; the
//     client falls back to local speech synthesis.
//
// # Dev Mode
//
// The stub's chat reply is a deterministic echo of the input, so the entire
// chat path is testable offline. An explicit mock switch makes Transcribe
// return a canned transcript in either mode.
package brain
