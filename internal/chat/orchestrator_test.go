// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates a single conversational turn.
package chat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/morganforge/alfred/internal/brain"
	"github.com/morganforge/alfred/internal/commands"
	"github.com/morganforge/alfred/internal/memory"
	"github.com/morganforge/alfred/internal/staff"
)

// failingProvider simulates a remote model outage.
type failingProvider struct{}

func (failingProvider) Chat(ctx context.Context, message string, history []memory.Turn, businessContext string) (string, error) {
	return "", errors.New("model unreachable")
}

func (failingProvider) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	return "", errors.New("model unreachable")
}

func (failingProvider) Speak(ctx context.Context, text, voice, format string) ([]byte, error) {
	return nil, errors.New("model unreachable")
}

func newTestOrchestrator(t *testing.T, provider brain.Provider) (*Orchestrator, *memory.Store) {
	t.Helper()

	store, err := staff.Open(":memory:")
	if err != nil {
		t.Fatalf("open staff store: %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init staff store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mem := memory.NewStore(filepath.Join(t.TempDir(), "alfred_memory.json"))
	if provider == nil {
		provider = &brain.StubProvider{}
	}
	return New(commands.NewInterpreter(store), mem, store, provider), mem
}

func TestRespond_EmptyMessage(t *testing.T) {
	orch, mem := newTestOrchestrator(t, nil)

	for _, input := range []string{"", "   ", "\n\t"} {
		reply, history, err := orch.Respond(context.Background(), "", input)
		if err != nil {
			t.Fatalf("Respond(%q) failed: %v", input, err)
		}
		if reply != EmptyPrompt {
			t.Errorf("Respond(%q) = %q, want canned prompt", input, reply)
		}
		if history != nil {
			t.Errorf("blank input should return nil history, got %v", history)
		}
	}

	if mem.Len(memory.DefaultSession) != 0 {
		t.Error("blank input must not be recorded")
	}
}

func TestRespond_CommandPath(t *testing.T) {
	orch, mem := newTestOrchestrator(t, failingProvider{})

	reply, history, err := orch.Respond(context.Background(), "", "/help")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if reply != commands.HelpText {
		t.Errorf("reply = %q, want help text", reply)
	}
	// A failing provider proves commands never reach the model.
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].User != "/help" || history[0].Alfred != commands.HelpText {
		t.Errorf("recorded turn = %+v", history[0])
	}
	if mem.Len(memory.DefaultSession) != 1 {
		t.Error("command exchange should be recorded")
	}
}

func TestRespond_ChatPath(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	reply, history, err := orch.Respond(context.Background(), "", "hello there")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if !strings.Contains(reply, `I received: "hello there"`) {
		t.Errorf("reply = %q, want stub echo", reply)
	}
	if !strings.Contains(reply, "(Business context loaded.)") {
		t.Errorf("reply = %q, want business context note", reply)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestRespond_TrimsBeforeDispatch(t *testing.T) {
	orch, _ := newTestOrchestrator(t, nil)

	reply, history, err := orch.Respond(context.Background(), "", "  hi  ")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if !strings.Contains(reply, `I received: "hi"`) {
		t.Errorf("reply = %q, want trimmed echo", reply)
	}
	if history[0].User != "hi" {
		t.Errorf("recorded message = %q, want trimmed form", history[0].User)
	}
}

func TestRespond_ProviderErrorPropagates(t *testing.T) {
	orch, mem := newTestOrchestrator(t, failingProvider{})

	reply, history, err := orch.Respond(context.Background(), "", "hello")
	if err == nil {
		t.Fatal("expected provider error")
	}
	if reply != "" || history != nil {
		t.Errorf("failed turn should return empty results, got %q / %v", reply, history)
	}
	if mem.Len(memory.DefaultSession) != 0 {
		t.Error("failed turn must not be recorded")
	}
}

func TestRespond_HistoryViewIsCapped(t *testing.T) {
	orch, mem := newTestOrchestrator(t, nil)

	for i := 0; i < HistoryView+5; i++ {
		mem.Append(memory.DefaultSession, memory.Turn{
			User:   fmt.Sprintf("q%d", i),
			Alfred: fmt.Sprintf("a%d", i),
		})
	}

	_, history, err := orch.Respond(context.Background(), "", "one more")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if len(history) != HistoryView {
		t.Errorf("history length = %d, want %d", len(history), HistoryView)
	}
	// Newest turn must survive the cap.
	if history[len(history)-1].User != "one more" {
		t.Errorf("last turn = %+v, want the new exchange", history[len(history)-1])
	}
}

func TestRespond_SessionKeyDefaulting(t *testing.T) {
	orch, mem := newTestOrchestrator(t, nil)

	if _, _, err := orch.Respond(context.Background(), "", "hello"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if mem.Len(memory.DefaultSession) != 1 {
		t.Error("empty session key should map to the default session")
	}
}

func TestRespond_SessionsAreIndependent(t *testing.T) {
	orch, mem := newTestOrchestrator(t, nil)

	if _, _, err := orch.Respond(context.Background(), "alice", "hi from alice"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	_, history, err := orch.Respond(context.Background(), "bob", "hi from bob")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if len(history) != 1 || history[0].User != "hi from bob" {
		t.Errorf("bob's history = %v, want only bob's turn", history)
	}
	if mem.Len("alice") != 1 || mem.Len("bob") != 1 {
		t.Error("sessions should be recorded independently")
	}
}

func TestRespond_DefaultSessionIsSnapshotted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alfred_memory.json")

	store, err := staff.Open(":memory:")
	if err != nil {
		t.Fatalf("open staff store: %v", err)
	}
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init staff store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mem := memory.NewStore(path)
	orch := New(commands.NewInterpreter(store), mem, store, &brain.StubProvider{})

	if _, _, err := orch.Respond(context.Background(), "", "remember this"); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if !strings.Contains(string(data), "remember this") {
		t.Errorf("snapshot should contain the exchange, got %s", data)
	}
}
