package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parents and writes content", func(t *testing.T) {
		t.Parallel()
		dst := filepath.Join(t.TempDir(), "a", "b", "test_metadata")

		if err := WriteFile(dst, []byte("PID=1\n"), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatalf("read back: %v", err)
		}
		if string(got) != "PID=1\n" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		t.Parallel()
		dst := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(dst, []byte("old content that is longer"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFile(dst, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("permissions are not enforced on windows")
		}
		dst := filepath.Join(t.TempDir(), "file")

		if err := WriteFile(dst, nil, 0o600); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}

		info, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("perm = %o, want 600", perm)
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		if err := WriteFile(filepath.Join(dir, "file"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("expected only the destination file, found %d entries", len(entries))
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		if err := WriteFile("", []byte("x"), 0o644); !errors.Is(err, ErrEmptyPath) {
			t.Fatalf("error = %v, want ErrEmptyPath", err)
		}
	})
}
