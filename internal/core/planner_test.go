// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/abcu/courseplanner/internal/catalog"
	"github.com/abcu/courseplanner/internal/db"
	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/internal/source"
)

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
	details []string
	err     error
}

func (f *fakeAudit) LogAction(_ context.Context, action, details string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	f.details = append(f.details, details)
	return f.err
}

func (f *fakeAudit) RecentActions(_ context.Context, limit int) ([]model.AuditLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AuditLogEntry
	for i := len(f.actions) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, model.AuditLogEntry{ID: i + 1, Action: f.actions[i], Details: f.details[i]})
	}
	return out, nil
}

const endToEnd = "CS200,Data Structures,CS101\nCS101,Intro to CS"

func TestPlanner_EndToEnd(t *testing.T) {
	audit := &fakeAudit{}
	p := NewPlanner(WithAudit(audit))

	if n := p.LoadCatalog(endToEnd); n != 2 {
		t.Fatalf("expected 2 courses, got %d", n)
	}

	want := []model.CourseSummary{{ID: "CS101", Name: "Intro to CS"}, {ID: "CS200", Name: "Data Structures"}}
	if got := p.ListCourses(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ListCourses = %v, want %v", got, want)
	}

	c, err := p.DescribeCourse("CS200")
	if err != nil {
		t.Fatalf("DescribeCourse: %v", err)
	}
	if c.Name != "Data Structures" || !reflect.DeepEqual(c.Prerequisites, []string{"CS101"}) {
		t.Fatalf("unexpected course %+v", c)
	}

	if _, err := p.DescribeCourse("CS999"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	wantActions := []string{db.ActionLoadCatalog, db.ActionListCourses, db.ActionDescribeCourse, db.ActionDescribeCourse}
	if !reflect.DeepEqual(audit.actions, wantActions) {
		t.Fatalf("audit actions = %v, want %v", audit.actions, wantActions)
	}
	if audit.details[3] != "course: CS999, found: false" {
		t.Fatalf("unexpected audit details %q", audit.details[3])
	}
}

func TestPlanner_EmptyState(t *testing.T) {
	p := NewPlanner()
	if st := p.Status(); st.Loaded || st.Courses != 0 {
		t.Fatalf("expected empty status, got %+v", st)
	}
	if got := p.ListCourses(); len(got) != 0 {
		t.Fatalf("expected no courses, got %v", got)
	}
	if _, err := p.DescribeCourse("CS101"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := p.PrerequisiteChain("CS101"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanner_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ABCU_input.txt")
	if err := os.WriteFile(path, []byte(endToEnd+"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	p := NewPlanner()
	n, err := p.LoadFile(path)
	if err != nil || n != 2 {
		t.Fatalf("LoadFile = %d, %v", n, err)
	}
	if st := p.Status(); !st.Loaded || st.Origin != path || st.Courses != 2 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestPlanner_LoadFileFailureKeepsCatalog(t *testing.T) {
	audit := &fakeAudit{}
	p := NewPlanner(WithAudit(audit))
	p.LoadCatalog(endToEnd)

	_, err := p.LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, source.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if _, err := p.DescribeCourse("CS101"); err != nil {
		t.Fatalf("previous catalog should survive a failed load: %v", err)
	}
	if audit.actions[1] != db.ActionLoadFailed {
		t.Fatalf("expected failed load to be audited, got %v", audit.actions)
	}
}

func TestPlanner_InjectedReader(t *testing.T) {
	p := NewPlanner(WithReader(func(path string) (string, error) {
		if path != "mem://catalog" {
			t.Fatalf("unexpected path %q", path)
		}
		return "MATH201,Discrete Mathematics\n", nil
	}))
	if n, err := p.LoadFile("mem://catalog"); err != nil || n != 1 {
		t.Fatalf("LoadFile = %d, %v", n, err)
	}
}

func TestPlanner_PrerequisiteChain(t *testing.T) {
	p := NewPlanner()
	p.LoadCatalog("CS300,Algorithms,CS200,MATH201\nCS200,Data Structures,CS101\nCS101,Intro\nMATH201,Discrete")
	got, err := p.PrerequisiteChain("CS300")
	if err != nil {
		t.Fatalf("PrerequisiteChain: %v", err)
	}
	if want := []string{"CS200", "CS101", "MATH201"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPlanner_AuditFailureDoesNotFailOperation(t *testing.T) {
	p := NewPlanner(WithAudit(&fakeAudit{err: errors.New("db down")}))
	p.LoadCatalog(endToEnd)
	if _, err := p.DescribeCourse("CS101"); err != nil {
		t.Fatalf("audit failure leaked into DescribeCourse: %v", err)
	}
}

func TestPlanner_ConcurrentReadsDuringLoad(t *testing.T) {
	p := NewPlanner()
	p.LoadCatalog(endToEnd)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			p.LoadCatalog(endToEnd)
		}()
		go func() {
			defer wg.Done()
			if got := p.ListCourses(); len(got) != 2 {
				t.Errorf("observed partial catalog: %v", got)
			}
		}()
	}
	wg.Wait()
}

func TestBuildDashboardData(t *testing.T) {
	audit := &fakeAudit{}
	p := NewPlanner(WithAudit(audit))
	p.LoadCatalog("CS300,Planner,CS101,CS102\nCS101,Intro\nCS102,Programming,CS101")

	data, err := BuildDashboardData(context.Background(), p, audit)
	if err != nil {
		t.Fatalf("BuildDashboardData: %v", err)
	}
	if !data.Loaded || data.CourseCount != 3 || data.WithPrereqs != 2 || data.MaxPrerequisites != 2 {
		t.Fatalf("unexpected dashboard %+v", data)
	}
	if len(data.RecentLogs) != 1 || data.RecentLogs[0].Action != db.ActionLoadCatalog {
		t.Fatalf("unexpected recent logs %+v", data.RecentLogs)
	}

	if _, err := BuildDashboardData(context.Background(), NewPlanner(), nil); err != nil {
		t.Fatalf("nil reader should be allowed: %v", err)
	}
}
