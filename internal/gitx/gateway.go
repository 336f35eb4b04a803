// Package gitx runs git for the status line and parses what it prints.
// Every failure (missing binary, non-zero exit, timeout) collapses to "no
// data"; callers never see an error.
package gitx

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/young1lin/powerline-footer/internal/logging"
)

var gitLog = logging.ForComponent(logging.CompGit)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = time.Second

//go:generate mockgen -source=gateway.go -destination=mock_runner.go -package=gitx

// Runner runs an external command in dir and returns its trimmed stdout.
// ok is false on spawn error, non-zero exit or timeout.
type Runner interface {
	Run(ctx context.Context, dir string, name string, args []string) (out string, ok bool)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given per-call timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes the command. The process is killed when the timeout expires.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args []string) (string, bool) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = 100 * time.Millisecond
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			gitLog.Debug("command timed out", "cmd", name, "args", args, "timeout", timeout)
		} else {
			gitLog.Debug("command failed", "cmd", name, "args", args, "error", err)
		}
		return "", false
	}
	return strings.TrimSpace(stdout.String()), true
}
