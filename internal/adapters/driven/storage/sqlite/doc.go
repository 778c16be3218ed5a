// Package sqlite provides the SQLite-backed implementations of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation. It
// implements two store interfaces through a single database connection:
//
//   - ReportStore: History of analysis reports and their matched sources
//   - ScoreRecorder: Local originality scores keyed by document ID, used when
//     no record API is configured
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.verity/data/verity.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
