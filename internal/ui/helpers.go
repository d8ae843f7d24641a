// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui holds text formatting shared by the CLI, the line menu and the
// TUI. Everything here returns plain, translated strings.
package ui

import (
	"strings"

	"github.com/abcu/courseplanner/internal/i18n"
	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/util/slicest"
)

// ContainsIgnoreCase reports whether s contains sub, case-insensitive.
func ContainsIgnoreCase(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// FilterSummaries keeps the rows whose ID or name contains term,
// case-insensitive. An empty term keeps everything.
func FilterSummaries(rows []model.CourseSummary, term string) []model.CourseSummary {
	if term == "" {
		return rows
	}
	return slicest.Filter(rows, func(r model.CourseSummary) bool {
		return ContainsIgnoreCase(r.ID, term) || ContainsIgnoreCase(r.Name, term)
	})
}

// CourseListLines renders the "Here is a sample schedule" listing.
func CourseListLines(rows []model.CourseSummary) []string {
	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, i18n.T("course.list_header"), "")
	for _, r := range rows {
		lines = append(lines, r.String())
	}
	return append(lines, "")
}

// CourseDetailLines renders a course as "ID, Name" followed by its
// prerequisites.
func CourseDetailLines(c model.Course) []string {
	prereqs := c.PrerequisiteList()
	if !c.HasPrerequisites() {
		prereqs = i18n.T("course.no_prerequisites")
	}
	return []string{c.String(), i18n.T("course.prerequisites", prereqs)}
}

// NotFoundLine is the message shown for an unknown course identifier.
func NotFoundLine(id string) string {
	return i18n.T("course.not_found", id)
}

// ChainLine renders a prerequisite chain, or the empty-chain message.
func ChainLine(id string, chain []string) string {
	if len(chain) == 0 {
		return i18n.T("course.no_chain")
	}
	return i18n.T("course.chain", id, strings.Join(chain, ", "))
}
