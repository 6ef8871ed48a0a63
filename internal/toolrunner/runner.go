// Package toolrunner abstracts blocking invocation of external build tools
// so pipeline tests can script tool outcomes without real binaries.
package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Spec describes one tool invocation.
type Spec struct {
	Command string
	Args    []string
	Dir     string
}

// Result captures the terminated process's exit state and streams.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes an external tool and waits for it to exit. A non-zero exit
// code is reported through Result, not through the error: the error is
// reserved for failures to run the tool at all (missing binary, bad dir).
type Runner interface {
	Run(ctx context.Context, spec Spec) (Result, error)
}

// ExecRunner shells out via os/exec.
type ExecRunner struct{}

// NewExecRunner returns the production runner.
func NewExecRunner() *ExecRunner { return &ExecRunner{} }

// Run executes the tool, capturing stdout and stderr fully. The call blocks
// until the process terminates or ctx is canceled.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) (Result, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...) // #nosec G204 -- command comes from configuration, not requests
	cmd.Dir = spec.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
