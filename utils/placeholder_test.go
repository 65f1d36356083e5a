package utils

import "testing"

func TestReplaceVars(t *testing.T) {
	vars := map[string]string{
		"USER":   "alice",
		"BRANCH": "/main/task001",
	}

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single", "Checkin by %USER%", "Checkin by alice"},
		{"repeated", "%USER% and %USER%", "alice and alice"},
		{"multiple vars", "%USER% on %BRANCH%", "alice on /main/task001"},
		{"unknown untouched", "%USER% did %UNKNOWN%", "alice did %UNKNOWN%"},
		{"case sensitive", "%user%", "%user%"},
		{"no placeholders", "plain text", "plain text"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReplaceVars(tc.in, vars); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReplaceVarsValueNotRescanned(t *testing.T) {
	// A substituted value containing '%' must be inserted verbatim, never
	// treated as a new placeholder.
	vars := map[string]string{
		"PCT":  "100%",
		"EVIL": "%PCT%",
	}

	if got := ReplaceVars("progress %PCT%", vars); got != "progress 100%" {
		t.Errorf("got %q", got)
	}
	if got := ReplaceVars("%EVIL%", vars); got != "%PCT%" {
		t.Errorf("value was re-scanned: %q", got)
	}
}
