// Package sqlite stores a corpus in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. A database written by
// Store.Write is a corpus payload in its own right: CorpusLoader reads it back
// in the original order.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Authors are normalised into their own table; themes, motifs and characters
// keep their per-work position.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
