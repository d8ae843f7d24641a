// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core exposes the planner operations shared by the CLI, the line
// menu and the TUI.
package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abcu/courseplanner/internal/catalog"
	"github.com/abcu/courseplanner/internal/db"
	"github.com/abcu/courseplanner/internal/logging"
	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/internal/source"
	"github.com/abcu/courseplanner/util/slicest"
)

// auditTimeout bounds a single audit write so a slow database never stalls
// the planner.
const auditTimeout = 5 * time.Second

// Planner owns a catalog.Store and serializes access to it: loads take the
// write lock, reads share the read lock.
type Planner struct {
	mu     sync.RWMutex
	store  *catalog.Store
	origin string

	audit  AuditRecorder
	reader CatalogReader
}

// Option configures a Planner.
type Option func(*Planner)

// WithAudit records planner actions to r.
func WithAudit(r AuditRecorder) Option {
	return func(p *Planner) { p.audit = r }
}

// WithReader replaces the file reader used by LoadFile.
func WithReader(r CatalogReader) Option {
	return func(p *Planner) { p.reader = r }
}

// NewPlanner returns a planner with an empty catalog.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{store: catalog.NewStore(), reader: source.ReadAllText}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadCatalog parses text and replaces the catalog with the result. It
// returns the number of courses loaded.
func (p *Planner) LoadCatalog(text string) int {
	n := p.load(text, "")
	p.record(db.ActionLoadCatalog, fmt.Sprintf("courses: %d", n))
	return n
}

// LoadFile reads the catalog at path and loads it. When the file cannot be
// read the previous catalog is kept and the error is returned.
func (p *Planner) LoadFile(path string) (int, error) {
	text, err := p.reader(path)
	if err != nil {
		p.record(db.ActionLoadFailed, fmt.Sprintf("file: %s, error: %v", path, err))
		return 0, err
	}
	n := p.load(text, path)
	logging.Infof("loaded %d courses from %s", n, path)
	p.record(db.ActionLoadCatalog, fmt.Sprintf("file: %s, courses: %d", path, n))
	return n, nil
}

func (p *Planner) load(text, origin string) int {
	records := catalog.Parse(text)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store.Load(records)
	p.origin = origin
	return p.store.Len()
}

// ListCourses returns every course as an ID/name row, sorted by ID.
func (p *Planner) ListCourses() []model.CourseSummary {
	p.mu.RLock()
	courses := p.store.Sorted()
	p.mu.RUnlock()

	out := slicest.Map(courses, model.Course.Summary)
	p.record(db.ActionListCourses, fmt.Sprintf("courses: %d", len(out)))
	return out
}

// Courses returns the full sorted records.
func (p *Planner) Courses() []model.Course {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.store.Sorted()
}

// DescribeCourse returns the course with exactly this identifier, or
// catalog.ErrNotFound.
func (p *Planner) DescribeCourse(id string) (model.Course, error) {
	p.mu.RLock()
	c, err := p.store.Find(id)
	p.mu.RUnlock()

	p.record(db.ActionDescribeCourse, fmt.Sprintf("course: %s, found: %t", id, err == nil))
	return c, err
}

// PrerequisiteChain returns every direct and indirect prerequisite of id in
// depth-first order, or catalog.ErrNotFound.
func (p *Planner) PrerequisiteChain(id string) ([]string, error) {
	p.mu.RLock()
	chain, err := p.store.Chain(id)
	p.mu.RUnlock()

	p.record(db.ActionPrerequisiteChain, fmt.Sprintf("course: %s, chain: %s", id, strings.Join(chain, " ")))
	return chain, err
}

// Status describes the current catalog.
type Status struct {
	Loaded  bool
	Courses int
	Origin  string
}

// Status reports whether a catalog is loaded, its size and the file it came
// from (empty for text loads).
func (p *Planner) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Status{Loaded: p.store.Loaded(), Courses: p.store.Len(), Origin: p.origin}
}

func (p *Planner) record(action, details string) {
	if p.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()
	if err := p.audit.LogAction(ctx, action, details); err != nil {
		logging.Warnf("audit log write failed: %v", err)
	}
}
