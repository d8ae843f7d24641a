// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package catalog

import (
	"strings"

	"github.com/abcu/courseplanner/internal/model"
)

// Delimiter separates the fields of a catalog line.
const Delimiter = ","

// SplitFields splits a catalog line into its comma separated fields from
// left to right. Fields are returned verbatim.
func SplitFields(line string) []string {
	return strings.Split(line, Delimiter)
}

// ParseLine maps the fields of one non-empty line onto a course:
// fields[0] is the identifier, fields[1] the name and the rest are
// prerequisites in order. A single trailing comma does not produce an
// empty prerequisite.
func ParseLine(line string) model.Course {
	fields := SplitFields(line)
	c := model.Course{ID: fields[0]}
	if len(fields) < 2 {
		return c
	}
	c.Name = fields[1]

	prereqs := fields[2:]
	if n := len(prereqs); n > 0 && prereqs[n-1] == "" {
		prereqs = prereqs[:n-1]
	}
	if len(prereqs) > 0 {
		c.Prerequisites = append([]string(nil), prereqs...)
	}
	return c
}

// Parse converts catalog text into courses in input order. Empty lines are
// skipped; a trailing carriage return is removed from every line first so
// CRLF files behave like LF files.
func Parse(text string) []model.Course {
	lines := strings.Split(text, "\n")
	courses := make([]model.Course, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		courses = append(courses, ParseLine(line))
	}
	return courses
}
