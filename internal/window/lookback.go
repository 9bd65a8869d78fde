package window

import (
	"strconv"
	"strings"
)

// ResolveLookback scans command-line tokens for a lookback hour count. Four
// equivalent spellings are accepted: "--hours=N", "--hours N", "--lookback"
// (with either spelling) and a bare 1-2 digit token. Values outside [1, 99],
// non-numeric strings and empty values all fall back to def.
func ResolveLookback(args []string, def int) int {
	for i := 0; i < len(args); i++ {
		tok := strings.TrimSpace(args[i])
		lower := strings.ToLower(tok)

		switch {
		case lower == "--hours" || lower == "--lookback":
			if i+1 < len(args) {
				if n, ok := parseHours(args[i+1]); ok {
					return n
				}
				i++
			}
		case strings.HasPrefix(lower, "--hours="):
			if n, ok := parseHours(tok[len("--hours="):]); ok {
				return n
			}
		case strings.HasPrefix(lower, "--lookback="):
			if n, ok := parseHours(tok[len("--lookback="):]); ok {
				return n
			}
		case !strings.HasPrefix(tok, "--"):
			if n, ok := parseHours(tok); ok {
				return n
			}
		}
	}
	return def
}

// parseHours accepts only trimmed 1-2 digit strings representing a positive
// hour count, i.e. values in [1, 99].
func parseHours(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
