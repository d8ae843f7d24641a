// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package catalog

// Chain expands the prerequisites of id depth first: each direct
// prerequisite is emitted and then expanded in turn. A course is expanded
// at most once, which keeps cyclic catalogs finite. Prerequisites that are
// not in the store are emitted but have nothing to expand.
func (s *Store) Chain(id string) ([]string, error) {
	if s.index(id) < 0 {
		return nil, ErrNotFound
	}
	visited := make(map[string]bool)
	var out []string
	s.expand(id, visited, &out)
	return out, nil
}

func (s *Store) expand(id string, visited map[string]bool, out *[]string) {
	if visited[id] {
		return
	}
	visited[id] = true
	i := s.index(id)
	if i < 0 {
		return
	}
	for _, p := range s.courses[i].Prerequisites {
		*out = append(*out, p)
		s.expand(p, visited, out)
	}
}
