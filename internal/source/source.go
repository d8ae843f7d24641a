// Copyright (c) 2026 Courseplanner Team
// Courseplanner - course catalog and prerequisite planner
// This source code is licensed under the MIT license found in the LICENSE file.

// Package source reads and writes catalog files on disk. Files ending in
// ".zst" are zstd-compressed copies of the same flat text format.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks a zstd-compressed catalog file.
const CompressedExt = ".zst"

// ErrUnreadable wraps every failure to obtain catalog text.
var ErrUnreadable = errors.New("catalog source unreadable")

// IsCompressed reports whether path names a zstd-compressed catalog.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedExt)
}

// ReadAllText returns the full text of the catalog at path.
func ReadAllText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if IsCompressed(path) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("%w: could not create zstd reader: %w", ErrUnreadable, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	return string(data), nil
}

// Pack writes the catalog at src to dst as a zstd stream.
func Pack(src, dst string) (err error) {
	text, err := ReadAllText(src)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return writeCompressed(out, text)
}

func writeCompressed(w io.Writer, text string) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("could not create zstd writer: %w", err)
	}
	if _, err := io.Copy(zw, bytes.NewBufferString(text)); err != nil {
		_ = zw.Close()
		return fmt.Errorf("could not write compressed catalog: %w", err)
	}
	return zw.Close()
}
