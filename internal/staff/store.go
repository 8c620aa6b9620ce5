// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package staff provides the SQLite-backed staff directory store.
package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// Record is a single staff directory entry.
//
// ID is store-assigned; no other field is guaranteed unique. Department,
// Status, and CurrentDailyRate are nullable.
type Record struct {
	ID               int64
	FullName         string
	Role             string
	Department       string
	Status           string
	CurrentDailyRate *float64
	CreatedAt        time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Store provides access to the staff table.
//
// Name and department lookups are case-insensitive exact matches; there is no
// fuzzy matching, and with duplicate names the first row in store order wins.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the staff database at path.
// Use ":memory:" for an in-memory database in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	// Single writer: the pure Go driver serializes writes anyway, and a single
	// connection keeps the in-memory database stable across queries.
	db.SetMaxOpenConns(1)

	return &Store{db: db}, nil
}

// Init creates the staff table and indexes if they do not exist.
// Callers treat failure as non-fatal: the chat path degrades gracefully
// without a reachable directory.
func (s *Store) Init(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS staff (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		full_name          TEXT NOT NULL,
		role               TEXT,
		department         TEXT,
		status             TEXT DEFAULT 'active',
		current_daily_rate REAL,
		created_at         TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_staff_full_name  ON staff(full_name);
	CREATE INDEX IF NOT EXISTS idx_staff_department ON staff(department);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: create schema: %v", ErrDatabaseError, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Create inserts a new record and returns the store-assigned ID.
// The record's ID and CreatedAt fields are filled in on success.
func (s *Store) Create(ctx context.Context, r *Record) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO staff (full_name, role, department, status, current_daily_rate, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.FullName, nullStr(r.Role), nullStr(r.Department), nullStr(r.Status),
		r.CurrentDailyRate, r.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert staff: %v", ErrDatabaseError, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", ErrDatabaseError, err)
	}
	r.ID = id
	return id, nil
}

// UpdateRate overwrites the daily rate for the record with the given ID.
func (s *Store) UpdateRate(ctx context.Context, id int64, rate float64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE staff SET current_daily_rate = ? WHERE id = ?`, rate, id,
	); err != nil {
		return fmt.Errorf("%w: update rate: %v", ErrDatabaseError, err)
	}
	return nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

const selectColumns = `id, full_name, role, department, status, current_daily_rate, created_at`

// FindByName returns the first record whose full name matches name
// case-insensitively, or nil if there is no match.
func (s *Store) FindByName(ctx context.Context, name string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM staff WHERE full_name = ? COLLATE NOCASE LIMIT 1`,
		name,
	)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find by name: %v", ErrDatabaseError, err)
	}
	return r, nil
}

// FindByDepartment returns all records in the given department,
// matched case-insensitively.
func (s *Store) FindByDepartment(ctx context.Context, dept string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM staff WHERE department = ? COLLATE NOCASE`,
		dept,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: find by department: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// All returns every staff record in store order.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM staff`)
	if err != nil {
		return nil, fmt.Errorf("%w: select all: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		r         Record
		role      sql.NullString
		dept      sql.NullString
		status    sql.NullString
		rate      sql.NullFloat64
		createdAt sql.NullTime
	)
	if err := s.Scan(&r.ID, &r.FullName, &role, &dept, &status, &rate, &createdAt); err != nil {
		return nil, err
	}
	r.Role = role.String
	r.Department = dept.String
	r.Status = status.String
	if rate.Valid {
		v := rate.Float64
		r.CurrentDailyRate = &v
	}
	if createdAt.Valid {
		r.CreatedAt = createdAt.Time
	}
	return &r, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrDatabaseError, err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// nullStr maps "" to NULL so empty optional fields stay nullable in the table.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
