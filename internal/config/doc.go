// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for alfred.
//
// Configuration is TOML-based with built-in defaults and environment
// variable overrides. The file lives at ~/.alfred/config.toml and is kept
// at 0600 permissions because it can hold the OpenAI API key.
//
// # Key Types
//
//   - Config: the complete configuration with Server, OpenAI, Memory, and
//     Database sections
//   - ValidationError / ValidateErrors: structured validation failures
//
// # Precedence
//
// Values are resolved in order: built-in defaults, then the config file,
// then environment variables (OPENAI_API_KEY, ALFRED_MODEL,
// ALFRED_SYSTEM_PROMPT, MOCK_MODE, ALFRED_ADDR, ALFRED_DB_PATH,
// ALFRED_MEMORY_FILE).
//
// # Dev Mode
//
// An empty API key is not an error: DevMode reports true and the backend
// runs against the stub provider with no network calls.
package config
