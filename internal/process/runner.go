package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/giantswarm/testwait/internal/sentinel"
)

// ErrCommandFailed matches every *CommandError.
const ErrCommandFailed = sentinel.Error("command failed")

// ErrEmptyArgv is returned when Run is called without a program to execute.
const ErrEmptyArgv = sentinel.Error("argv must not be empty")

// DefaultWaitDelay bounds how long Run waits for a canceled command to exit
// after SIGTERM before it is killed.
const DefaultWaitDelay = 5 * time.Second

// Runner executes a command to completion and returns its standard output.
// A non-nil error means the command could not be started or exited unsuccessfully.
type Runner interface {
	Run(ctx context.Context, argv []string, stdin string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, argv []string, stdin string) (string, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, argv []string, stdin string) (string, error) {
	return f(ctx, argv, stdin)
}

// CommandError describes a command that could not be started or exited
// unsuccessfully. ExitCode is -1 when the command never ran to an exit status.
type CommandError struct {
	Argv     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed", strings.Join(e.Argv, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports ErrCommandFailed as a match so callers need not know the
// concrete type.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// ExecRunner runs commands with os/exec. The zero value is ready to use.
type ExecRunner struct {
	// WaitDelay is the grace period between SIGTERM and SIGKILL once ctx is
	// done. Zero uses DefaultWaitDelay.
	WaitDelay time.Duration
	// Logger receives debug output. Nil uses slog.Default().
	Logger *slog.Logger
}

// Run starts argv[0] with the remaining arguments, feeds it stdin and waits
// for it to exit. Stdout is returned even when the command fails.
//
// If ctx is done before the command exits, the command receives SIGTERM and
// is killed after WaitDelay.
func (r ExecRunner) Run(ctx context.Context, argv []string, stdin string) (string, error) {
	if len(argv) == 0 || argv[0] == "" {
		return "", ErrEmptyArgv
	}

	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	waitDelay := r.WaitDelay
	if waitDelay <= 0 {
		waitDelay = DefaultWaitDelay
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // G204: argv is built by the caller
	configureSysProcAttr(cmd)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug("command finished", "argv", argv, "duration", time.Since(start), "error", err)
	if err == nil {
		return stdout.String(), nil
	}

	cmdErr := &CommandError{
		Argv:     append([]string(nil), argv...),
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil && killedBySignal(err) {
		cmdErr.Err = fmt.Errorf("%w: %w", ctxErr, err)
	}
	return stdout.String(), cmdErr
}

// killedBySignal reports whether err is an exit caused by SIGTERM or SIGKILL,
// the two signals Run uses to stop a canceled command.
func killedBySignal(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return false
	}
	sig := status.Signal()
	return sig == syscall.SIGTERM || sig == syscall.SIGKILL
}
