package tool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Result holds the outcome of one external tool invocation.
type Result struct {
	// ExitCode is the tool's exit status. 0 means success.
	ExitCode int
	// Output is the combined stdout/stderr text, captured verbatim.
	Output string
}

// Runner executes external tools.
// This interface allows stubbing tool invocation in tests.
type Runner interface {
	// Run executes a tool in workDir and returns its exit code and
	// combined output. A non-zero exit code is a valid Result, not an
	// error; errors are reserved for infrastructure failures (tool not
	// found, context cancelled, permission denied).
	Run(ctx context.Context, workDir, name string, args ...string) (*Result, error)
}

// ExecRunner is the default Runner using os/exec.
type ExecRunner struct {
	// Timeout bounds a single tool invocation. Zero means no timeout;
	// a hung tool then hangs the run, matching the upstream contract.
	Timeout time.Duration
}

// NewExecRunner creates a new ExecRunner with no timeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the tool using exec.CommandContext.
func (r *ExecRunner) Run(ctx context.Context, workDir, name string, args ...string) (*Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second // Allow I/O to drain after context cancellation

	// Combined capture: the tools interleave progress and diagnostics
	// across both streams and the log wants them in order.
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()

	result := &Result{Output: output.String()}

	if err != nil {
		// Context cancellation/timeout takes priority. It's an
		// infrastructure error even if the process exited with a signal.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run %s: %w", name, ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		// Infrastructure error (not found, permission denied, etc.)
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	return result, nil
}
