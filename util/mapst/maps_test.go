// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.
package mapst

import "testing"

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"de": 1, "en": 2, "as": 3})
	want := []string{"as", "de", "en"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if got := Keys(map[int]bool{}); len(got) != 0 {
		t.Fatalf("expected no keys, got %v", got)
	}
}
