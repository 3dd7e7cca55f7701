// Package sqlite provides a SQLite-based implementation of driven.CentroidStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Vectors are stored as little-endian float32 BLOBs.
//
// # Data Location
//
// By default, the database is stored at ~/.geodist/data/centroids.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
