// Package repository reads and writes the order aggregate, payments and
// the catalog against the relational store. Multi-row writes are
// transactional; the check-then-act hazards of the workflow (order-number
// allocation, the completion cascade, print flags) are implemented as
// atomic conditional writes here.
package repository

import (
	"strings"

	"github.com/jinzhu/gorm"
)

// Store wraps the injected database handle.
type Store struct {
	db *gorm.DB
}

// NewStore creates a repository on top of an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migration and seeding at startup.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// isUniqueViolation matches the duplicate-key errors of both supported
// backends (SQLite "UNIQUE constraint failed", Postgres "duplicate key").
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// isRetryableWrite additionally matches transient lock contention, which
// SQLite reports as a busy/locked database and Postgres as a deadlock.
func isRetryableWrite(err error) bool {
	if isUniqueViolation(err) {
		return true
	}
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "deadlock")
}
