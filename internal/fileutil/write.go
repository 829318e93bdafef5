package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrEmptyPath is returned when a destination path is empty.
const ErrEmptyPath = sentinel.Error("destination path must not be empty")

// WriteFile writes data to dst with mode perm, creating parent directories as
// needed. The data is written to a temporary file in dst's directory, synced,
// and renamed over dst.
func WriteFile(dst string, data []byte, perm os.FileMode) (retErr error) {
	if dst == "" {
		return ErrEmptyPath
	}
	if err := EnsureDirForFile(dst); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-write-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	// fsync before rename, or a crash could leave dst renamed but empty.
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("rename temp file to destination: %w", err)
	}
	return nil
}
