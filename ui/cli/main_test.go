// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
)

const sampleCatalog = `CSCI100,Introduction to Computer Science
CSCI101,Introduction to Programming in C++,CSCI100
CSCI200,Data Structures,CSCI101
MATH201,Discrete Mathematics
CSCI300,Introduction to Algorithms,CSCI200,MATH201
`

// cliEnv isolates config, audit database and catalog under a temp dir and
// returns the catalog path.
func cliEnv(t *testing.T, audit bool) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("COURSEPLANNER_DATABASE_DSN", filepath.Join(tmp, "audit.db"))
	if audit {
		t.Setenv("COURSEPLANNER_AUDIT_ENABLED", "true")
	} else {
		t.Setenv("COURSEPLANNER_AUDIT_ENABLED", "false")
	}

	path := filepath.Join(tmp, "ABCU_input.txt")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	t.Setenv("COURSEPLANNER_CATALOG_FILE", path)
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	origTerm := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = origTerm }()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	app.close()
	app = nil
	return out.String(), err
}

func TestResolveBuildVersion_MainVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "v1.2.3"},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected v1.2.3 got %s", v)
	}
	if c != gitCommit {
		t.Fatalf("expected commit to equal package gitCommit (default) got %s", c)
	}
	if d != buildDate {
		t.Fatalf("expected date to equal package buildDate (default) got %s", d)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: modulePath, Version: "v0.3.1-0.20260901120000-abcdef012345"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v0.3.1-0.20260901120000-abcdef012345" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_GitCommitFallback(t *testing.T) {
	orig := gitCommit
	defer func() { gitCommit = orig }()
	gitCommit = "deadbeef"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.time", Value: "2026-09-30T10:00:00Z"},
		},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "deadbeef" {
		t.Fatalf("expected gitCommit fallback got %s", v)
	}
	if c != "deadbeef" || d != "2026-09-30T10:00:00Z" {
		t.Fatalf("unexpected commit/date: %q %q", c, d)
	}
}

func TestGetConfigPathFromCli(t *testing.T) {
	cmd := NewRootCmd()
	if p, err := getConfigPathFromCli(cmd); err != nil || p != nil {
		t.Fatalf("unset flag: got %v, %v", p, err)
	}

	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := getConfigPathFromCli(cmd); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestApplyDefaultFlags_Idempotent(t *testing.T) {
	cmd := NewRootCmd()
	applyDefaultFlags(cmd) // second call must not panic on redefinition
	if cmd.PersistentFlags().Lookup("catalog.file") == nil {
		t.Fatalf("catalog.file flag missing")
	}
}

func TestShowCommand(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "show", "CSCI300")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "CSCI300, Introduction to Algorithms\nPrerequisites: CSCI200, MATH201\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestShowCommand_NoPrerequisites(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "show", "MATH201")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Prerequisites: None") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestShowCommand_NotFound(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "show", "CSCI999")
	if err != nil {
		t.Fatalf("not found must not be an error: %v", err)
	}
	if strings.TrimSpace(out) != "Course Number: CSCI999 was not found." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestListCommand(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := strings.Join([]string{
		"Here is a sample schedule:",
		"",
		"CSCI100,Introduction to Computer Science",
		"CSCI101,Introduction to Programming in C++",
		"CSCI200,Data Structures",
		"CSCI300,Introduction to Algorithms",
		"MATH201,Discrete Mathematics",
		"",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestListCommand_Table(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "list", "--table")
	if err != nil {
		t.Fatalf("list --table: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[4], "CSCI200, MATH201") {
		t.Fatalf("unexpected table %q", out)
	}
}

func TestChainCommand(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "", "chain", "CSCI300")
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	want := "Prerequisite chain for CSCI300: CSCI200, CSCI101, CSCI100, MATH201\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestMissingCatalogFails(t *testing.T) {
	cliEnv(t, false)
	t.Setenv("COURSEPLANNER_CATALOG_FILE", filepath.Join(t.TempDir(), "missing.txt"))
	if _, err := runCLI(t, "", "list"); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestCatalogFlagOverridesEnv(t *testing.T) {
	cliEnv(t, false)
	other := filepath.Join(t.TempDir(), "other.txt")
	if err := os.WriteFile(other, []byte("ZOO1,Zoology\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := runCLI(t, "", "--catalog.file", other, "show", "ZOO1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(out, "ZOO1, Zoology") {
		t.Fatalf("flag did not override env: %q", out)
	}
}

func TestAuditCommand(t *testing.T) {
	cliEnv(t, true)
	if _, err := runCLI(t, "", "show", "CSCI100"); err != nil {
		t.Fatalf("show: %v", err)
	}
	out, err := runCLI(t, "", "audit", "--limit", "5")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !strings.Contains(out, "DESCRIBE_COURSE") || !strings.Contains(out, "LOAD_CATALOG") {
		t.Fatalf("expected recorded actions, got %q", out)
	}
}

func TestAuditCommand_Disabled(t *testing.T) {
	cliEnv(t, false)
	if _, err := runCLI(t, "", "audit"); err == nil {
		t.Fatalf("expected error when audit is disabled")
	}
}

func TestCatalogPackThenShow(t *testing.T) {
	plain := cliEnv(t, false)
	packed := filepath.Join(t.TempDir(), "catalog")
	out, err := runCLI(t, "", "catalog", "pack", plain, packed)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !strings.Contains(out, packed+".zst") {
		t.Fatalf("expected .zst suffix to be added, got %q", out)
	}

	t.Setenv("COURSEPLANNER_CATALOG_FILE", packed+".zst")
	out, err = runCLI(t, "", "show", "CSCI101")
	if err != nil {
		t.Fatalf("show from packed catalog: %v", err)
	}
	if !strings.HasPrefix(out, "CSCI101, Introduction to Programming in C++") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestConfigInit(t *testing.T) {
	cliEnv(t, false)
	// The first invocation writes the default config file.
	if _, err := runCLI(t, "", "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if _, err := runCLI(t, "", "config", "init"); err == nil {
		t.Fatalf("expected error when config exists without --force")
	}
	out, err := runCLI(t, "", "config", "init", "--force")
	if err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	path := strings.TrimSpace(strings.TrimPrefix(out, "wrote "))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written config: %v", err)
	}
	if !strings.Contains(string(data), "catalog:") {
		t.Fatalf("config file missing catalog section: %s", data)
	}
}

func TestRootPlainRunsMenu(t *testing.T) {
	cliEnv(t, false)
	out, err := runCLI(t, "9\n", "--plain")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.HasPrefix(out, "Welcome to the course planner.") {
		t.Fatalf("menu not started: %q", out)
	}
}
