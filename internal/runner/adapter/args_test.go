package adapter

import (
	"reflect"
	"testing"
)

func TestRenderParams(t *testing.T) {
	got := renderParams(map[string]any{
		"hours":    5,
		"dry_run":  true,
		"skip":     false,
		"label":    "two words",
		"start_at": "09:00",
	})

	want := []string{"--dry-run", "--hours", "5", "--label", "two words", "--start-at", "09:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("renderParams = %v, want %v", got, want)
	}
}

func TestRenderParamsEmpty(t *testing.T) {
	if got := renderParams(nil); got != nil {
		t.Errorf("renderParams(nil) = %v, want nil", got)
	}
}
