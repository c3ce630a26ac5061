package trace

import (
	"database/sql"
	_ "embed"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/syncschool/internal/testutil"
)

//go:embed schema.sql
var schemaSQL string

// Log is an in-memory event log of lesson runs.
//
// Every run gets its own step clock so that line sequence numbers restart at
// 1 per run; two runs of the same lesson therefore produce identical
// (seq, text) pairs when the lesson is deterministic.
type Log struct {
	db *sql.DB

	mu     sync.Mutex
	clocks map[string]*testutil.StepClock
}

// Open creates a fresh in-memory trace log.
//
// The database is configured with:
//   - a single connection (SQLite supports one writer; a second connection
//     to ":memory:" would also see a different, empty database)
//   - foreign key enforcement
//   - a 5-second busy timeout for lock contention
func Open() (*Log, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to trace database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Log{db: db, clocks: make(map[string]*testutil.StepClock)}, nil
}

// Close closes the underlying database, discarding all recorded runs.
func (l *Log) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// clockFor returns the step clock for a run, creating it on first use.
func (l *Log) clockFor(runID string) *testutil.StepClock {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clocks[runID]
	if !ok {
		c = testutil.NewStepClock()
		l.clocks[runID] = c
	}
	return c
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}
