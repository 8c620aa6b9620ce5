// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory provides bounded per-session conversation history.
//
// Each session key owns an ordered sequence of turns. The "default" session
// is additionally mirrored to a durable JSON snapshot after every append;
// all other sessions are process-lifetime only.
//
// # Key Types
//
//   - Turn: One user message and the corresponding reply
//   - Store: The lock-protected session table with load/append/persist
//
// # Durability
//
// The snapshot is a human-readable JSON array, rewritten in full on each
// persist via an atomic temp-file + rename. An unreadable snapshot loads as
// an empty history rather than failing startup.
//
// # Usage
//
//	store := memory.NewStore("alfred_memory.json")
//	store.Append(memory.DefaultSession, memory.Turn{User: "hi", Alfred: "hello"})
//	if err := store.Persist(memory.DefaultSession); err != nil {
//	    log.Printf("MEMORY | persist failed: %v", err)
//	}
//	recent := store.Recent(memory.DefaultSession, 20)
package memory
