// Package runner executes external automation binaries with a timeout.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout applies when a caller passes a zero timeout.
const DefaultTimeout = 10 * time.Second

// Result is the outcome of a single subprocess invocation.
type Result struct {
	ExitCode int
	Stdout   string // trimmed
	Stderr   string // trimmed
	TimedOut bool
	Duration time.Duration
	Timeout  time.Duration
}

// OK reports whether the process exited zero before the deadline.
func (r Result) OK() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// Err returns nil on success, otherwise an error of the form
// "<action> failed: <detail>".
func (r Result) Err(action string) error {
	if r.OK() {
		return nil
	}
	if r.TimedOut {
		return fmt.Errorf("%s failed: timed out after %s", action, r.Timeout)
	}
	detail := r.Stderr
	if detail == "" {
		detail = fmt.Sprintf("exit status %d", r.ExitCode)
	}
	return fmt.Errorf("%s failed: %s", action, detail)
}

// Runner runs argv vectors. Implementations must never return a Result
// with ExitCode 0 for a process that did not run to completion.
type Runner interface {
	Run(ctx context.Context, argv []string, timeout time.Duration) Result
	LookPath(name string) (string, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	logger *slog.Logger
}

// Ensure Exec implements Runner.
var _ Runner = (*Exec)(nil)

// New returns an Exec runner. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exec{logger: logger}
}

// Run starts argv[0] with the remaining arguments and waits for it to exit
// or for the timeout to elapse, in which case the process is killed.
func (e *Exec) Run(ctx context.Context, argv []string, timeout time.Duration) Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if len(argv) == 0 {
		return Result{ExitCode: -1, Stderr: "empty command", Timeout: timeout}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// #nosec G204 - argv is assembled by the platform command builders
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren may keep the pipes open after the kill.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
		Timeout:  timeout,
	}

	switch {
	case err == nil:
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.ExitCode = -1
		res.TimedOut = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			// The process never started (missing binary, permissions).
			res.ExitCode = -1
			if res.Stderr == "" {
				res.Stderr = err.Error()
			}
		}
	}

	e.logger.Debug("ran command",
		"argv", argv,
		"exit", res.ExitCode,
		"timed_out", res.TimedOut,
		"duration", res.Duration)
	return res
}

// LookPath resolves a binary on PATH.
func (e *Exec) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
