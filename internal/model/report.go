package model

import (
	"fmt"
	"strings"
)

// PhaseResult is one phase's outcome as reported by the host.
type PhaseResult struct {
	Phase      string  `json:"phase"`
	Passed     bool    `json:"passed"`
	Detail     string  `json:"detail"`
	DurationMS float64 `json:"duration_ms"`
}

// VerificationReport aggregates one run of the phased verification
// protocol. Built fresh per run, read-only afterward. AllPassed is the
// sole gate callers may use before irreversible follow-on work — phase
// failures arrive inside a structurally successful HTTP reply, so the
// status code proves nothing.
type VerificationReport struct {
	AllPassed bool          `json:"all_passed"`
	PhasesRun int           `json:"phases_run"`
	Details   []PhaseResult `json:"details"`
}

// ReportFrom derives a VerificationReport from a decoded reply. The
// client never invents phases: details are taken verbatim from the host,
// and absent fields default to a failed, empty report.
func ReportFrom(payload map[string]any) VerificationReport {
	report := VerificationReport{}

	if v, ok := payload["all_passed"].(bool); ok {
		report.AllPassed = v
	}
	if v, ok := payload["phases_run"].(float64); ok {
		report.PhasesRun = int(v)
	}

	details, _ := payload["details"].([]any)
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		pr := PhaseResult{}
		pr.Phase, _ = m["phase"].(string)
		pr.Passed, _ = m["passed"].(bool)
		pr.Detail, _ = m["detail"].(string)
		pr.DurationMS, _ = m["duration_ms"].(float64)
		report.Details = append(report.Details, pr)
	}
	return report
}

// Summary renders the report as human-readable text, listing failing
// phases distinctly from passing ones.
func (r VerificationReport) Summary() string {
	var b strings.Builder

	verdict := "FAILED"
	if r.AllPassed {
		verdict = "PASSED"
	}
	fmt.Fprintf(&b, "Verification: %s (%d phase", verdict, r.PhasesRun)
	if r.PhasesRun != 1 {
		b.WriteString("s")
	}
	b.WriteString(")\n")

	for _, d := range r.Details {
		status := "PASS"
		if !d.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "  %s  [%s] %s (%.1fms)\n", status, d.Phase, d.Detail, d.DurationMS)
	}
	return b.String()
}
