package domain

import (
	"context"
	"time"
)

// ActionExecutor runs one whitelisted action as an opaque external process.
// Implementations must honor the timeout by terminating the process and must
// never discard partial output.
type ActionExecutor interface {
	Supports(a *Action) bool
	Run(ctx context.Context, a *Action, params map[string]any, timeout time.Duration) (ExecutionResult, error)
}
