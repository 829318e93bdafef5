package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir creates path and any missing parents with mode 0755.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the parent directory of filePath.
func EnsureDirForFile(filePath string) error {
	if err := EnsureDir(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", filePath, err)
	}
	return nil
}

// CreateDir creates path, whose parent must exist, and reports whether this
// call created it. An existing directory is not an error.
func CreateDir(path string) (created bool, err error) {
	err = os.Mkdir(path, 0o755)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrExist):
		info, statErr := os.Stat(path)
		if statErr == nil && info.IsDir() {
			return false, nil
		}
		return false, fmt.Errorf("create directory %s: exists and is not a directory", path)
	default:
		return false, fmt.Errorf("create directory %s: %w", path, err)
	}
}
