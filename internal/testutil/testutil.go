// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// WriteTempFile writes content to name inside a per-test temp dir and
// returns the full path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// AssertFileNonEmpty fails the test unless path exists with size > 0.
func AssertFileNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Fatalf("output file %s is empty", path)
	}
}
