// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks translation keys for consistency. It scans the Go
// sources for i18n.T("key") calls and compares them against the embedded
// locale files: keys used but missing from the primary locale, keys missing
// from a secondary locale, and keys no code uses.
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/abcu/courseplanner/util/mapst"
	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

// report collects the findings of one run.
type report struct {
	undefined map[string][]string // key -> locales lacking it
	orphaned  []string
}

func (r report) failed() bool { return len(r.undefined) > 0 }

func main() {
	fmt.Println("Running i18n linter...")

	used, err := findUsedKeys(projectRoot)
	if err != nil {
		fmt.Printf("error scanning sources: %v\n", err)
		os.Exit(1)
	}
	locales, err := loadLocales(filepath.Join(projectRoot, localesDir))
	if err != nil {
		fmt.Printf("error loading locales: %v\n", err)
		os.Exit(1)
	}
	r := check(used, locales)

	for _, k := range mapst.SortedKeys(r.undefined) {
		fmt.Printf("  - Missing: %s (in %s)\n", k, strings.Join(r.undefined[k], ", "))
	}
	for _, k := range r.orphaned {
		fmt.Printf("  - Orphaned: %s\n", k)
	}

	if r.failed() {
		fmt.Println("Found missing translation keys.")
		os.Exit(1)
	}
	fmt.Printf("All %d keys present in %d locales.\n", len(used), len(locales))
}

// keyCallRe matches i18n.T("some.key") and string literals that look like
// keys (menu entries are built from such literals).
var keyCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|"([a-z]+\.[a-z][a-z_.]*)"`)

// findUsedKeys scans all non-test .go files below root, skipping tools.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range keyCallRe.FindAllStringSubmatch(string(content), -1) {
			switch {
			case m[1] != "":
				keys[m[1]] = struct{}{}
			case m[2] != "" && !strings.HasSuffix(m[2], ".go") && !strings.HasSuffix(m[2], ".yaml"):
				keys[m[2]] = struct{}{}
			}
		}
		return nil
	})
	return keys, err
}

// loadLocales reads every *.yaml in dir, keyed by file name.
func loadLocales(dir string) (map[string]map[string]struct{}, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]struct{}, len(files))
	for _, f := range files {
		keys, err := loadKeysFromLocale(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out[filepath.Base(f)] = keys
	}
	if _, ok := out[primaryLocale]; !ok {
		return nil, fmt.Errorf("primary locale %s not found in %s", primaryLocale, dir)
	}
	return out, nil
}

// check compares the primary locale against the others and against the
// used keys. Used keys unknown to the primary locale are not reported, since
// the literal pattern also matches config keys.
func check(used map[string]struct{}, locales map[string]map[string]struct{}) report {
	r := report{undefined: make(map[string][]string)}
	primary := locales[primaryLocale]

	names := mapst.SortedKeys(locales)

	for key := range primary {
		for _, name := range names {
			if _, ok := locales[name][key]; !ok {
				r.undefined[key] = append(r.undefined[key], name)
			}
		}
		if _, ok := used[key]; !ok && key != "language.name" {
			r.orphaned = append(r.orphaned, key)
		}
	}
	sort.Strings(r.orphaned)
	return r
}

// loadKeysFromLocale reads a YAML file and returns a flat set of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts nested maps into dot-separated keys.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	m, ok := node.(map[string]any)
	if !ok {
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
		return
	}
	for k, v := range m {
		next := k
		if prefix != "" {
			next = prefix + "." + k
		}
		flattenYAML(next, v, keys)
	}
}
