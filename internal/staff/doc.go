// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package staff provides the SQLite-backed staff directory store.
//
// The store is the persistence collaborator behind the slash-command
// interpreter and the business-context assembler. It owns the staff table
// and exposes narrow create / lookup / update operations.
//
// # Key Types
//
//   - Record: A single staff entry (ID is store-assigned)
//   - Store: Database handle with the directory operations
//
// # Usage
//
// Open a store and ensure the schema exists:
//
//	store, err := staff.Open("alfred.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := store.Init(ctx); err != nil {
//	    log.Printf("STAFF | warning: could not create tables: %v", err)
//	}
//
// Lookups are case-insensitive exact matches:
//
//	rec, err := store.FindByName(ctx, "olive grace perez")
//
// The driver is modernc.org/sqlite (pure Go, no cgo).
package staff
