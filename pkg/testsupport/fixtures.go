// Package testsupport holds helpers shared by package tests: design fixture
// loading and JSON golden comparisons.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/document"
)

// MustLoadDesign reads a design fixture, failing the test on error.
func MustLoadDesign(t *testing.T, path string) design.Design {
	t.Helper()

	d, err := document.LoadFile(path)
	if err != nil {
		t.Fatalf("load design: %v", err)
	}
	return d
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// JSONGoldenDiff encodes value as JSON and compares it with the golden file at
// path after normalising both sides, so key order and number formatting do
// not matter. It returns an empty string when they match.
func JSONGoldenDiff(t *testing.T, path string, value any) string {
	t.Helper()

	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	if WriteMaybeGolden(t, path, append(payload, '\n')) {
		return ""
	}

	want, err := normalizeJSON(MustReadGolden(t, path))
	if err != nil {
		t.Fatalf("golden %s: %v", path, err)
	}
	got, err := normalizeJSON(payload)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	return cmp.Diff(want, got)
}

func normalizeJSON(data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: decode json: %w", err)
	}
	return out, nil
}
