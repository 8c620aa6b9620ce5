// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the staff directory.
package commands

import (
	"strings"
	"unicode"
)

// Marker is the prefix that switches a message into command mode.
const Marker = "/"

// =============================================================================
// PARSE RESULT
// =============================================================================

// Invocation is the transient result of parsing command-mode input.
// It exists only during dispatch and is never persisted.
type Invocation struct {
	// Name is the lowercased command token, including the marker
	// (e.g. "/add_staff").
	Name string

	// RawArgs is the untokenized remainder after the command token.
	RawArgs string

	// Args is RawArgs split on the pipe delimiter: trimmed, non-empty
	// fields in order. This is the sole argument grammar; there is no
	// quoting or escaping.
	Args []string
}

// =============================================================================
// PARSING
// =============================================================================

// IsCommand reports whether the trimmed input starts with the marker.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Marker)
}

// Parse splits command-mode input into an Invocation. The first
// whitespace-delimited token (case-insensitive) selects the command; the
// remainder is pipe-delimited arguments.
func Parse(input string) Invocation {
	text := strings.TrimSpace(input)

	name := text
	rawArgs := ""
	if idx := strings.IndexFunc(text, unicode.IsSpace); idx >= 0 {
		name = text[:idx]
		rawArgs = strings.TrimSpace(text[idx:])
	}

	return Invocation{
		Name:    strings.ToLower(name),
		RawArgs: rawArgs,
		Args:    SplitArgs(rawArgs),
	}
}

// SplitArgs splits an argument string on "|" into trimmed, non-empty fields.
func SplitArgs(raw string) []string {
	var args []string
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part != "" {
			args = append(args, part)
		}
	}
	return args
}
