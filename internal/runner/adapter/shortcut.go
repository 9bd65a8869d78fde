package adapter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"macgate/internal/domain"
)

const defaultShortcutsBin = "/usr/bin/shortcuts"

// ShortcutAdapter runs actions through the Shortcuts CLI. Shortcuts take at
// most one input value, so only the "input" parameter is forwarded.
type ShortcutAdapter struct {
	Bin string
}

func NewShortcutAdapter() *ShortcutAdapter {
	return &ShortcutAdapter{Bin: defaultShortcutsBin}
}

func (a *ShortcutAdapter) Supports(act *domain.Action) bool {
	return act != nil && act.Type == domain.Shortcut
}

func (a *ShortcutAdapter) Run(ctx context.Context, act *domain.Action, params map[string]any, timeout time.Duration) (domain.ExecutionResult, error) {
	name := act.ShortcutName
	if name == "" && act.Path != "" {
		name = filepath.Base(act.Path)
	}
	if name == "" {
		name = act.Name
	}

	argv := []string{"run", name}
	if input, ok := params["input"]; ok && input != nil {
		if s := fmt.Sprintf("%v", input); s != "" {
			argv = append(argv, "--input", s)
		}
	}

	return spawn(ctx, act.Name, timeout, a.Bin, argv...), nil
}
