// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package business derives a compact directory summary for model prompts.
package business

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/morganforge/alfred/internal/staff"
)

// Context is a derived, non-persisted snapshot of the staff directory.
// It is recomputed on every chat turn and never cached across turns.
type Context struct {
	StaffCount  int
	Departments []string // distinct, non-empty, sorted
}

// Build reads the full staff directory and summarizes it.
//
// Errors are returned to the caller rather than swallowed here; the
// orchestrator decides whether to fall back to a minimal context. This keeps
// a degraded persistence layer from ever reaching the chat path while still
// surfacing the fault to whoever wants it.
func Build(ctx context.Context, store *staff.Store) (Context, error) {
	records, err := store.All(ctx)
	if err != nil {
		return Context{}, err
	}

	seen := make(map[string]struct{})
	var departments []string
	for _, r := range records {
		dept := strings.TrimSpace(r.Department)
		if dept == "" {
			continue
		}
		if _, ok := seen[dept]; ok {
			continue
		}
		seen[dept] = struct{}{}
		departments = append(departments, dept)
	}
	sort.Strings(departments)

	return Context{
		StaffCount:  len(records),
		Departments: departments,
	}, nil
}

// Render formats the context as the text block injected into the model
// prompt. The zero value renders too, so a minimal fallback context still
// reads as supplied data.
func (c Context) Render() string {
	depts := "(none)"
	if len(c.Departments) > 0 {
		depts = strings.Join(c.Departments, ", ")
	}
	return fmt.Sprintf("staff_count: %d\ndepartments: %s", c.StaffCount, depts)
}
