// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server provides the HTTP API for the Alfred conversational backend.
//
// The server fronts the chat orchestrator and the model provider with four
// endpoints: POST /chat for text conversation, POST /stt for speech-to-text,
// POST /tts for speech synthesis, and GET /health for liveness checks.
//
// # Key Types
//
//   - Server: HTTP server wiring routes, middleware, and collaborators
//   - ChatRequest / ChatResponse: JSON contract of the /chat endpoint
//   - CORSConfig: cross-origin policy, open to all origins by default
//
// # Error Contract
//
// Validation failures (malformed JSON, missing upload fields) return 4xx
// with a JSON error body. Backend failures on /chat are degraded into an
// in-band "Error: ..." reply with HTTP 200 so a voice client always receives
// speakable text. STT failures return 5xx because the client has no useful
// fallback for a missing transcript. TTS never fails outward; an empty audio
// body tells the client to use local synthesis.
//
// # Middleware
//
// Every request passes through panic recovery, request ID tagging, request
// logging, and CORS handling, composed with Chain.
package server
