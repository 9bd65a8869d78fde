// Package runner executes whitelisted actions through type-specific adapters.
package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"macgate/internal/domain"
	"macgate/internal/runner/adapter"
)

type Runner struct {
	Executors []domain.ActionExecutor
	Log       *logrus.Entry
}

// New wires the default adapter set: osascript for AppleScript/JXA, the
// Shortcuts CLI, and direct shell execution.
func New(log *logrus.Entry) *Runner {
	return &Runner{
		Executors: []domain.ActionExecutor{
			adapter.NewOsascriptAdapter(),
			adapter.NewShortcutAdapter(),
			adapter.NewShellAdapter(),
		},
		Log: log,
	}
}

// Run executes one action with its configured timeout. The result embeds the
// outcome status; an error is returned only when no adapter supports the
// action's type. There is no automatic retry.
func (r *Runner) Run(ctx context.Context, act *domain.Action, params map[string]any) (domain.ExecutionResult, error) {
	var exec domain.ActionExecutor
	for _, e := range r.Executors {
		if e.Supports(act) {
			exec = e
			break
		}
	}
	if exec == nil {
		return domain.ExecutionResult{}, fmt.Errorf("no executor for action %q (type=%s)", act.Name, act.Type)
	}

	l := r.Log.WithFields(logrus.Fields{
		"action": act.Name,
		"type":   string(act.Type),
	})

	res, err := exec.Run(ctx, act, params, act.EffectiveTimeout())
	if err != nil {
		l.WithError(err).Error("Action execution failed")
		return res, err
	}

	l.WithFields(logrus.Fields{
		"status":      string(res.Status),
		"exit_code":   res.ExitCode,
		"duration_ms": res.Duration.Milliseconds(),
	}).Info("Action execution complete")
	return res, nil
}
