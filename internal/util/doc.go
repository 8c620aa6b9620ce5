// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the alfred backend.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// Type Conversion:
//   - FloatToString: Fixed two-decimal rate formatting
//
// # Usage
//
//	// Write the memory snapshot without risking a torn file
//	err := util.AtomicWriteFile(path, data, 0644)
//
//	// Format a daily rate for display
//	s := util.FloatToString(585)
package util
