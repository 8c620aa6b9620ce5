// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the staff directory.
//
// Input beginning with "/" is parsed into a command name plus pipe-delimited
// arguments, executed against the staff store, and answered with a formatted
// human-readable reply. Input without the marker is reported as not
// consumed, and the caller falls through to chat mode.
//
// # Key Types
//
//   - Registry: Maps command names and aliases to handlers
//   - Interpreter: Parses, dispatches, and formats replies
//   - Invocation: Transient parse result during dispatch
//
// # Grammar
//
// The first whitespace-delimited token (case-insensitive) selects the
// command; the remainder splits on "|" into trimmed non-empty fields:
//
//	/add_staff Olive Grace Perez | Warehouse Supervisor | Warehouse | 585
//
// There is no quoting, escaping, or nesting.
//
// # Error Policy
//
// Bad arguments, non-numeric rates, unknown commands, and lookup misses are
// all converted to reply text with the command still counted as handled.
// Only a directory store failure surfaces as an error, and the orchestrator
// reports it in the reply rather than failing the request.
package commands
