// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the alfred backend.
package util

import "strconv"

// FloatToString converts a float64 to string with 2 decimal places.
// Used for daily-rate formatting in command replies.
func FloatToString(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
