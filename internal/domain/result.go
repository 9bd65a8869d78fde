package domain

import "time"

type RunStatus string

const (
	StatusOk       RunStatus = "ok"
	StatusFailed   RunStatus = "failed"
	StatusTimedOut RunStatus = "timed_out"
)

// ExecutionResult captures a single action invocation. Stdout is preserved
// verbatim regardless of status: diagnostic output from a failed run still has
// inspection value. Parsed is set by the normalizer when stdout decodes as
// JSON and stays nil otherwise.
type ExecutionResult struct {
	ActionName string
	ExitCode   int
	Stdout     string
	Stderr     string
	Parsed     any
	Duration   time.Duration
	Status     RunStatus
}
