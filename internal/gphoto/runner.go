package gphoto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// DefaultBinary is the gphoto2 executable looked up on PATH.
const DefaultBinary = "gphoto2"

// Runner executes gphoto2 with the given arguments and returns its captured
// output. A non-zero exit status is reported through Result.ExitCode, not as
// an error; the error return is reserved for failures to start the process
// or context cancellation.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// ExecRunner runs gphoto2 as a child process.
type ExecRunner struct {
	// Binary is the executable to run. Empty means DefaultBinary.
	Binary string
	// Dir is the working directory of the child process. Files written by
	// --capture-image-and-download and --get-all-files land here.
	Dir string
	// Logger receives one debug record per invocation. Nil disables it.
	Logger *slog.Logger
}

// NewExecRunner creates an ExecRunner for binary running in dir.
func NewExecRunner(binary, dir string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary, Dir: dir}
}

// WorkDir returns the directory gphoto2 runs in ("." when unset).
func (r *ExecRunner) WorkDir() string {
	if r.Dir == "" {
		return "."
	}
	return r.Dir
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (Result, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Args:   append([]string(nil), args...),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if r.Logger != nil {
		r.Logger.Debug("gphoto2 invocation",
			slog.Any("args", args),
			slog.Int("stdout_bytes", stdout.Len()),
			slog.Int("stderr_bytes", stderr.Len()),
			slog.Any("err", err))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return res, fmt.Errorf("%s %v interrupted: %w", binary, args, ctx.Err())
		}
		return res, fmt.Errorf("%s %v failed to run: %w", binary, args, err)
	}

	return res, nil
}
