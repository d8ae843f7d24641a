// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"

	"github.com/abcu/courseplanner/internal/model"
)

// recentLogLimit is how many audit entries the dashboard shows.
const recentLogLimit = 5

// DashboardData holds aggregated values for the main menu.
type DashboardData struct {
	Loaded           bool
	Origin           string
	CourseCount      int
	WithPrereqs      int
	MaxPrerequisites int
	RecentLogs       []model.AuditLogEntry
}

// BuildDashboardData summarizes the planner's catalog and, when reader is
// non-nil, the most recent audit entries. Dashboard reads are not audited.
func BuildDashboardData(ctx context.Context, p *Planner, reader AuditReader) (DashboardData, error) {
	st := p.Status()
	out := DashboardData{Loaded: st.Loaded, Origin: st.Origin, CourseCount: st.Courses}

	for _, c := range p.Courses() {
		if c.HasPrerequisites() {
			out.WithPrereqs++
		}
		if n := len(c.Prerequisites); n > out.MaxPrerequisites {
			out.MaxPrerequisites = n
		}
	}

	if reader != nil {
		logs, err := reader.RecentActions(ctx, recentLogLimit)
		if err != nil {
			return out, err
		}
		out.RecentLogs = logs
	}
	return out, nil
}
