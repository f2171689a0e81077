// Package testutil provides test helpers for manifest and CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "buildcond-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// FixturePath returns the absolute path to a file under the repository's
// testdata directory.
func FixturePath(t *testing.T, parts ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	// Walk up to the module root, where testdata lives next to go.mod.
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(append([]string{dir, "testdata"}, parts...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find module root from %s", wd)
		}
		dir = parent
	}
}

// ManifestPath returns the path of a named manifest fixture.
func ManifestPath(t *testing.T, name string) string {
	t.Helper()
	return FixturePath(t, "manifests", name)
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// CopyManifest copies a manifest fixture into dir and returns the new path.
// Tests that rewrite a manifest use this to leave the fixture untouched.
func CopyManifest(t *testing.T, name, dir string) string {
	t.Helper()
	data, err := os.ReadFile(ManifestPath(t, name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return WriteFile(t, dir, name, string(data))
}
