// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates a single conversational turn.
package chat

import (
	"context"
	"log"
	"strings"

	"github.com/morganforge/alfred/internal/brain"
	"github.com/morganforge/alfred/internal/business"
	"github.com/morganforge/alfred/internal/memory"
	"github.com/morganforge/alfred/internal/staff"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// HistoryView caps the number of turns returned to callers alongside a
	// reply. The store itself keeps the full transcript.
	HistoryView = 20

	// EmptyPrompt is returned for blank input without touching memory or
	// the model.
	EmptyPrompt = "Please say something for me to respond to."
)

// =============================================================================
// TYPES
// =============================================================================

// Interpreter consumes command-mode input. Non-command input is reported as
// not handled so the caller can fall through to the model.
type Interpreter interface {
	Execute(ctx context.Context, input string) (reply string, handled bool, err error)
}

// Orchestrator routes a user message to either the command interpreter or the
// model provider, records the exchange, and returns the recent history view.
type Orchestrator struct {
	interp   Interpreter
	memory   *memory.Store
	staff    *staff.Store
	provider brain.Provider
}

// New builds an Orchestrator from its collaborators.
func New(interp Interpreter, mem *memory.Store, staffStore *staff.Store, provider brain.Provider) *Orchestrator {
	return &Orchestrator{
		interp:   interp,
		memory:   mem,
		staff:    staffStore,
		provider: provider,
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Respond produces Alfred's reply to message within the given session.
// Commands never reach the model; plain messages are sent with recent
// history and current business data. Every produced exchange is recorded
// before the history view is returned.
func (o *Orchestrator) Respond(ctx context.Context, sessionKey, message string) (string, []memory.Turn, error) {
	if sessionKey == "" {
		sessionKey = memory.DefaultSession
	}

	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return EmptyPrompt, nil, nil
	}

	reply, handled, err := o.interp.Execute(ctx, message)
	if err != nil {
		return "", nil, err
	}
	if handled {
		return o.finish(sessionKey, trimmed, reply), o.memory.Recent(sessionKey, HistoryView), nil
	}

	reply, err = o.modelReply(ctx, sessionKey, trimmed)
	if err != nil {
		return "", nil, err
	}
	return o.finish(sessionKey, trimmed, reply), o.memory.Recent(sessionKey, HistoryView), nil
}

// modelReply gathers history and business data and asks the provider.
func (o *Orchestrator) modelReply(ctx context.Context, sessionKey, message string) (string, error) {
	bizCtx, err := business.Build(ctx, o.staff)
	if err != nil {
		// A degraded directory should not block conversation.
		log.Printf("CHAT | business context unavailable | error=%v", err)
		bizCtx = business.Context{}
	}

	return o.provider.Chat(ctx, message, o.memory.History(sessionKey), bizCtx.Render())
}

// finish records the exchange and snapshots the default session.
func (o *Orchestrator) finish(sessionKey, message, reply string) string {
	o.memory.Append(sessionKey, memory.Turn{User: message, Alfred: reply})
	if err := o.memory.Persist(sessionKey); err != nil {
		log.Printf("CHAT | memory persist failed | session=%s error=%v", sessionKey, err)
	}
	return reply
}
