package adapter

import (
	"fmt"
	"sort"
	"strings"
)

// renderParams turns request parameters into "--key value" pairs. Underscores
// in keys become dashes, boolean true renders the bare flag and boolean false
// drops it. Keys are sorted so the rendered invocation is deterministic.
func renderParams(params map[string]any) []string {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []string
	for _, k := range keys {
		flag := "--" + strings.ReplaceAll(k, "_", "-")
		switch v := params[k].(type) {
		case bool:
			if v {
				out = append(out, flag)
			}
		default:
			out = append(out, flag, fmt.Sprintf("%v", v))
		}
	}
	return out
}
