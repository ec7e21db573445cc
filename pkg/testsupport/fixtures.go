// Package testsupport provides fixture loading and deterministic payload
// generation for tests across the module.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// WriteTempFile writes content to a temp file and returns its path. The file
// is removed when the test finishes.
func WriteTempFile(t *testing.T, pattern string, content []byte) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		t.Fatalf("failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("failed to close temp file: %v", err)
	}

	return tmpfile.Name()
}

// FixturePath constructs a path to a fixture file relative to the testdata
// directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}
