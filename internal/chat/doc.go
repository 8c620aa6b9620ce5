// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates a single conversational turn.
//
// Input is routed in priority order: blank messages get a canned prompt,
// command-mode input goes to the interpreter, and everything else goes to
// the model provider with recent session history and a rendered business
// context attached. Every exchange that produces a reply is appended to the
// session transcript and, for the default session, snapshotted to disk.
//
// # Key Types
//
//   - Orchestrator: routes messages and records exchanges
//   - Interpreter: command execution boundary, satisfied by commands.Interpreter
//
// # Failure Semantics
//
// Interpreter and provider errors propagate to the transport layer, which
// degrades them into an in-band error reply. Business context build failures
// and snapshot write failures are logged and absorbed here so a degraded
// directory or disk never blocks conversation.
package chat
