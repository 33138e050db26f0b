package dialect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writePolicy writes a policy file into a temp dir and returns its path.
func writePolicy(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}
	return path
}

// TestLoadPolicy tests YAML policy matrix loading.
func TestLoadPolicy(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid policy in file order", func(t *testing.T) {
		t.Parallel()

		path := writePolicy(t, `dialects:
  - name: NT1
    expect_supported: false
  - name: SMB3_11
    expect_supported: true
`)

		matrix, err := LoadPolicy(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(matrix) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(matrix))
		}
		if matrix[0].Dialect != NT1 || matrix[0].ExpectSupported {
			t.Errorf("unexpected first entry: %+v", matrix[0])
		}
		if matrix[1].Dialect != SMB311 || !matrix[1].ExpectSupported {
			t.Errorf("unexpected second entry: %+v", matrix[1])
		}
	})

	t.Run("missing file returns ErrPolicyNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrPolicyNotFound) {
			t.Errorf("expected ErrPolicyNotFound, got %v", err)
		}
	})

	t.Run("empty dialect list returns ErrEmptyPolicy", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(writePolicy(t, "dialects: []\n"))
		if !errors.Is(err, ErrEmptyPolicy) {
			t.Errorf("expected ErrEmptyPolicy, got %v", err)
		}
	})

	t.Run("unknown dialect name returns ErrUnknownDialect", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(writePolicy(t, `dialects:
  - name: SMB9_99
    expect_supported: true
`))
		if !errors.Is(err, ErrUnknownDialect) {
			t.Errorf("expected ErrUnknownDialect, got %v", err)
		}
	})

	t.Run("duplicate dialect returns ErrDuplicateDialect", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(writePolicy(t, `dialects:
  - name: NT1
    expect_supported: false
  - name: NT1
    expect_supported: true
`))
		if !errors.Is(err, ErrDuplicateDialect) {
			t.Errorf("expected ErrDuplicateDialect, got %v", err)
		}
	})

	t.Run("malformed YAML returns a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := LoadPolicy(writePolicy(t, "dialects: [unbalanced"))
		if err == nil {
			t.Error("expected a parse error, got nil")
		}
	})
}
