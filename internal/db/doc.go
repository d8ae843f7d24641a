// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the persistence layer for the Courseplanner audit log.
//
// The catalog itself lives in memory (see package catalog); this package only
// records what users did with it: loads, listings and lookups. A Store is
// backed by Bun over SQLite (default), PostgreSQL or MySQL.
//
// Testing notes
//   - Prefer `db.New("sqlite", ":memory:")` in tests that need real DB
//     semantics; the pool is pinned to one connection for in-memory DSNs.
package db
