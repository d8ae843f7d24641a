// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core data types used throughout Courseplanner.
package model

import (
	"fmt"
	"strings"
)

// Course is one catalog entry (e.g., CS200, Data Structures, [CS101]).
// Courses are created by a catalog load and never mutated afterwards.
type Course struct {
	ID            string
	Name          string
	Prerequisites []string
}

// String returns the "ID, Name" form used by the course detail view.
func (c Course) String() string {
	return fmt.Sprintf("%s, %s", c.ID, c.Name)
}

// HasPrerequisites reports whether the course lists any prerequisite.
func (c Course) HasPrerequisites() bool {
	return len(c.Prerequisites) > 0
}

// PrerequisiteList joins the prerequisites with ", " in source order.
func (c Course) PrerequisiteList() string {
	return strings.Join(c.Prerequisites, ", ")
}

// Summary returns the list-view projection of the course.
func (c Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Name: c.Name}
}

// Clone returns a copy that does not share the prerequisite slice.
func (c Course) Clone() Course {
	out := c
	if c.Prerequisites != nil {
		out.Prerequisites = append([]string(nil), c.Prerequisites...)
	}
	return out
}

// CourseSummary is a row of the course list.
type CourseSummary struct {
	ID   string
	Name string
}

// String returns the "ID,Name" row format of the course list.
func (s CourseSummary) String() string {
	return s.ID + "," + s.Name
}

// AuditLogEntry is a single recorded planner action.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Username  string
	Action    string
	Details   string
}
