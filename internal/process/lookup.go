package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrNotFound is returned by FindExecutable when binary is neither in one of
// the search directories nor on PATH.
const ErrNotFound = sentinel.Error("unable to find binary")

// FindExecutable returns the path of binary. Each directory in search is
// probed first, in order, so a listed directory wins over a binary of the
// same name on PATH. Otherwise `which binary` is run through runner.
//
// A binary name containing a path separator is not searched for; it is
// returned as-is when it exists.
func FindExecutable(ctx context.Context, runner Runner, binary string, search []string) (string, error) {
	if binary == "" {
		return "", fmt.Errorf("find executable: %w", ErrEmptyArgv)
	}

	if strings.ContainsRune(binary, filepath.Separator) {
		if isRegularFile(binary) {
			return binary, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, binary)
	}

	for _, dir := range search {
		p := filepath.Join(dir, binary)
		if isRegularFile(p) {
			return p, nil
		}
	}

	out, err := runner.Run(ctx, []string{"which", binary}, "")
	if err == nil {
		if p := strings.TrimRight(out, "\r\n"); p != "" {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, binary)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
