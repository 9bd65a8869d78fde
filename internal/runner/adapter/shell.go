package adapter

import (
	"context"
	"strconv"
	"time"

	"macgate/internal/domain"
)

// ShellAdapter runs plain executables directly.
type ShellAdapter struct{}

func NewShellAdapter() *ShellAdapter {
	return &ShellAdapter{}
}

func (a *ShellAdapter) Supports(act *domain.Action) bool {
	return act != nil && act.Type == domain.Shell
}

func (a *ShellAdapter) Run(ctx context.Context, act *domain.Action, params map[string]any, timeout time.Duration) (domain.ExecutionResult, error) {
	argv := append([]string{}, act.Args...)
	if act.DefaultHours > 0 {
		argv = append(argv, "--default-hours", strconv.Itoa(act.EffectiveDefaultHours()))
	}
	argv = append(argv, renderParams(params)...)

	return spawn(ctx, act.Name, timeout, act.Path, argv...), nil
}
