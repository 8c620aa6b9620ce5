// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory provides bounded per-session conversation history.
package memory

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/morganforge/alfred/internal/util"
)

// DefaultSession is the one session key whose history is mirrored to durable
// storage after every append. All other sessions live only for the lifetime
// of the process.
const DefaultSession = "default"

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one user message and the corresponding reply.
// Immutable once created; owned by the session's history sequence.
//
// The JSON field names match the durable snapshot format
// (alfred_memory.json) and the /chat wire format.
type Turn struct {
	User   string `json:"user"`
	Alfred string `json:"alfred"`
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the in-memory history table, keyed by session.
//
// The table is lock-protected: concurrent requests against the same session
// key get a defined append ordering instead of racing on a shared map.
type Store struct {
	mu       sync.Mutex
	path     string
	sessions map[string][]Turn
}

// NewStore creates a store whose default session is loaded from path.
// A missing or unparsable snapshot degrades to an empty history; corrupt
// storage is never fatal.
func NewStore(path string) *Store {
	s := &Store{
		path:     path,
		sessions: make(map[string][]Turn),
	}
	s.sessions[DefaultSession] = loadSnapshot(path)
	return s
}

// loadSnapshot reads the durable history snapshot, returning an empty
// sequence if the file is absent or unreadable.
func loadSnapshot(path string) []Turn {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Turn{}
	}
	var turns []Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		// A crash mid-write can leave a torn snapshot behind; treat it as
		// empty rather than failing startup.
		return []Turn{}
	}
	return turns
}

// Append inserts a turn at the end of the session's history, creating the
// session if it does not exist yet.
func (s *Store) Append(key string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = append(s.sessions[key], turn)
}

// Persist writes the entire history of the default session to durable
// storage, replacing prior content. The write is atomic (temp file + rename)
// so a crash never leaves a partially written snapshot.
//
// Persist is a no-op for any other session key.
func (s *Store) Persist(key string) error {
	if key != DefaultSession {
		return nil
	}

	s.mu.Lock()
	history := s.sessions[key]
	data, err := json.MarshalIndent(history, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}

	return util.AtomicWriteFile(s.path, data, 0644)
}

// Recent returns at most the last max turns for the session, preserving
// chronological order. It bounds prompt size and the reply payload; the full
// history stays in memory and in the durable snapshot.
func (s *Store) Recent(key string, max int) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sessions[key]
	if max >= 0 && len(history) > max {
		history = history[len(history)-max:]
	}

	out := make([]Turn, len(history))
	copy(out, history)
	return out
}

// History returns a copy of the full history for the session.
func (s *Store) History(key string) []Turn {
	return s.Recent(key, -1)
}

// Len returns the number of turns stored for the session.
func (s *Store) Len(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions[key])
}
