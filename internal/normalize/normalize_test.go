package normalize

import (
	"testing"

	"macgate/internal/domain"
)

func TestOutputParsesJSON(t *testing.T) {
	res := domain.ExecutionResult{Stdout: `{"ok": true, "count": 2}`}

	Output(&res)

	parsed, ok := res.Parsed.(map[string]any)
	if !ok {
		t.Fatalf("Parsed = %T, want map", res.Parsed)
	}
	if parsed["count"] != float64(2) {
		t.Errorf("count = %v", parsed["count"])
	}
	if res.Stdout == "" {
		t.Error("raw stdout must stay intact")
	}
}

func TestOutputLeavesRawTextAlone(t *testing.T) {
	res := domain.ExecutionResult{Stdout: "not json at all"}

	Output(&res)

	if res.Parsed != nil {
		t.Errorf("Parsed = %v, want nil", res.Parsed)
	}
	if res.Stdout != "not json at all" {
		t.Errorf("stdout mutated: %q", res.Stdout)
	}
}

func TestOutputEmptyStdout(t *testing.T) {
	res := domain.ExecutionResult{}

	Output(&res)

	if res.Parsed != nil {
		t.Errorf("Parsed = %v, want nil for empty stdout", res.Parsed)
	}
}
