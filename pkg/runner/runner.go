// Package runner abstracts subprocess execution so commands that apply a
// bump or re-run a tool can be faked in tests.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Runner executes an external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	Dir    string
	Logger *slog.Logger
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.Logger != nil {
		r.Logger.Debug("executing", "cmd", name, "args", args, "dir", r.Dir)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, out)
	}
	return nil
}
