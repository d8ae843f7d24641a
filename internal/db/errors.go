// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "errors"

var (
	// ErrUnsupportedType is returned for database types other than sqlite,
	// postgres and mysql.
	ErrUnsupportedType = errors.New("unsupported database type")

	// ErrClosed is returned when using a store after Close.
	ErrClosed = errors.New("database is closed")
)
