package adapter

import (
	"context"
	"strconv"
	"time"

	"macgate/internal/domain"
)

const defaultOsascriptBin = "/usr/bin/osascript"

// OsascriptAdapter runs AppleScript and JXA actions through osascript.
type OsascriptAdapter struct {
	Bin string
}

func NewOsascriptAdapter() *OsascriptAdapter {
	return &OsascriptAdapter{Bin: defaultOsascriptBin}
}

func (a *OsascriptAdapter) Supports(act *domain.Action) bool {
	if act == nil {
		return false
	}
	return act.Type == domain.AppleScript || act.Type == domain.JXA
}

func (a *OsascriptAdapter) Run(ctx context.Context, act *domain.Action, params map[string]any, timeout time.Duration) (domain.ExecutionResult, error) {
	var argv []string
	if act.Type == domain.JXA {
		argv = append(argv, "-l", "JavaScript")
	}
	argv = append(argv, act.Path)
	argv = append(argv, act.Args...)
	if act.DefaultHours > 0 {
		argv = append(argv, "--default-hours", strconv.Itoa(act.EffectiveDefaultHours()))
	}
	argv = append(argv, renderParams(params)...)

	return spawn(ctx, act.Name, timeout, a.Bin, argv...), nil
}
