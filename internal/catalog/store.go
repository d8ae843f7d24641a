// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package catalog

import (
	"errors"
	"sort"

	"github.com/abcu/courseplanner/internal/model"
	"github.com/abcu/courseplanner/util/slicest"
)

// ErrNotFound is returned when no loaded course has the requested identifier.
var ErrNotFound = errors.New("course not found")

// Store owns the loaded courses. It starts Empty and becomes Loaded on the
// first Load; every later Load replaces the contents wholesale.
//
// A Store is not safe for concurrent use. Shared callers go through
// core.Planner, which serializes access.
type Store struct {
	courses []model.Course
	loaded  bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Less orders courses by identifier using byte-wise string comparison.
func Less(a, b model.Course) bool {
	return a.ID < b.ID
}

// Load replaces the store contents with records. The records are copied and
// sorted once, stably, so input order survives between equal identifiers.
func (s *Store) Load(records []model.Course) {
	courses := slicest.Map(records, model.Course.Clone)
	sort.SliceStable(courses, func(i, j int) bool {
		return Less(courses[i], courses[j])
	})
	s.courses = courses
	s.loaded = true
}

// Loaded reports whether Load has been called at least once.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Len returns the number of loaded courses.
func (s *Store) Len() int {
	return len(s.courses)
}

// Sorted returns every loaded course ordered by identifier.
func (s *Store) Sorted() []model.Course {
	return slicest.Map(s.courses, model.Course.Clone)
}

// Find returns the first course whose identifier equals id exactly.
func (s *Store) Find(id string) (model.Course, error) {
	if i := s.index(id); i >= 0 {
		return s.courses[i].Clone(), nil
	}
	return model.Course{}, ErrNotFound
}

func (s *Store) index(id string) int {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return i
		}
	}
	return -1
}
