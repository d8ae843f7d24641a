// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package catalog turns flat course catalog text into model.Course records
// and keeps them in an owned, ordered Store.
//
// The text format is one course per line:
//
//	IDENTIFIER,NAME[,PREREQ_ID]*
//
// There is no header row and no quoting. Fields are never trimmed, and
// parsing never fails: blank lines are skipped and lines without a comma
// become a course with only an identifier.
package catalog
