package script

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatText renders a run result as human-readable text.
func FormatText(r *RunResult) string {
	var b strings.Builder

	verdict := "FAIL"
	if r.OK() {
		verdict = "PASS"
	}
	fmt.Fprintf(&b, "%s  %s (%d/%d steps)\n", verdict, r.Name, r.Passed, len(r.Steps))

	for _, s := range r.Steps {
		if s.OK {
			fmt.Fprintf(&b, "  ok    %d %s\n", s.Index, s.Cmd)
			continue
		}
		fmt.Fprintf(&b, "  FAIL  %d %s: %s\n", s.Index, s.Cmd, s.Error)
	}

	if r.RolledBack {
		b.WriteString("  transaction rolled back\n")
	}
	if r.Report != nil {
		b.WriteString(indent(r.Report.Summary(), "  "))
	}
	if r.Saved {
		b.WriteString("  level saved\n")
	}
	return b.String()
}

// FormatJSON renders a run result as JSON.
func FormatJSON(r *RunResult) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("script: marshal result: %w", err)
	}
	return string(data), nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
