// Package normalize opportunistically interprets raw action output as
// structured data.
package normalize

import (
	"encoding/json"

	"macgate/internal/domain"
)

// Output attempts to decode the result's stdout as a JSON document. On success
// Parsed holds the decoded value and the raw stdout stays intact; on failure
// Parsed stays nil. Parse failure is never an error: raw-text output is a
// legitimate action result.
func Output(res *domain.ExecutionResult) {
	if res.Stdout == "" {
		return
	}
	var v any
	if err := json.Unmarshal([]byte(res.Stdout), &v); err != nil {
		return
	}
	res.Parsed = v
}
