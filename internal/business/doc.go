// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package business derives a compact directory summary for model prompts.
//
// Build reads the whole staff directory and reduces it to a staff count plus
// the sorted set of distinct department names. The result is injected into
// the language-model prompt as ground-truth data about the business.
//
// Build returns its error instead of swallowing it; the chat orchestrator
// substitutes a minimal zero context when the directory is unreachable, so a
// persistence outage degrades the prompt rather than the chat path.
package business
