package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"macgate/internal/domain"
)

// spawn runs one external process under a deadline, capturing stdout and
// stderr separately. A deadline hit forcibly terminates the process and is
// classified as TimedOut regardless of the resulting exit status, so stalls
// (e.g. a pending desktop permission dialog) stay distinguishable from tool
// failures. Partial output is preserved in every case.
func spawn(ctx context.Context, actionName string, timeout time.Duration, executable string, argv ...string) domain.ExecutionResult {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, executable, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	res := domain.ExecutionResult{
		ActionName: actionName,
		Stdout:     strings.TrimSpace(stdout.String()),
		Stderr:     strings.TrimSpace(stderr.String()),
		Duration:   time.Since(start),
		ExitCode:   -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Status = domain.StatusTimedOut
	case runErr != nil:
		res.Status = domain.StatusFailed
		if res.Stderr == "" {
			// Start failures (missing executable, bad permissions) produce no
			// stderr of their own.
			res.Stderr = runErr.Error()
		}
	case res.ExitCode != 0 || res.Stderr != "":
		res.Status = domain.StatusFailed
	default:
		res.Status = domain.StatusOk
	}
	return res
}
