// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sample = "CS200,Data Structures,CS101\nCS101,Intro to CS\n"

func TestReadAllText_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.txt")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadAllText(path)
	if err != nil {
		t.Fatalf("ReadAllText: %v", err)
	}
	if got != sample {
		t.Fatalf("got %q want %q", got, sample)
	}
}

func TestReadAllText_Missing(t *testing.T) {
	_, err := ReadAllText(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestPackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "courses.txt")
	dst := filepath.Join(dir, "courses.txt.zst")
	if err := os.WriteFile(src, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Pack(src, dst); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	raw, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read packed: %v", err)
	}
	if string(raw) == sample {
		t.Fatalf("packed file was not compressed")
	}
	got, err := ReadAllText(dst)
	if err != nil {
		t.Fatalf("ReadAllText(zst): %v", err)
	}
	if got != sample {
		t.Fatalf("got %q want %q", got, sample)
	}
}

func TestReadAllText_CorruptCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zst")
	if err := os.WriteFile(path, []byte("not zstd at all"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadAllText(path); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable for corrupt stream, got %v", err)
	}
}

func TestIsCompressed(t *testing.T) {
	if !IsCompressed("a/B.ZST") || IsCompressed("a/b.txt") {
		t.Fatalf("unexpected IsCompressed results")
	}
}
