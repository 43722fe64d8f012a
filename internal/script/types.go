// Package script runs declarative command sequences against the editor.
// A script file is a YAML document listing command envelopes; the runner
// brackets them in one transaction, so a failing step rolls the whole
// sequence back instead of leaving the level half-edited.
package script

import "github.com/ueagentforge/forge/sdk/go/forge"

// Script is one YAML script file.
type Script struct {
	// Name identifies the script in reports.
	Name string `yaml:"name"`
	// Transaction labels the editor undo boundary. Defaults to Name.
	Transaction string `yaml:"transaction"`
	// VerifyMask selects verification phases to run after the sequence
	// commits. Zero skips verification.
	VerifyMask int `yaml:"verify_mask"`
	// Save writes the level to disk after verification passes. Ignored
	// unless every requested phase passed.
	Save  bool   `yaml:"save"`
	Steps []Step `yaml:"steps"`
}

// Step is one command envelope in the sequence.
type Step struct {
	Cmd         string         `yaml:"cmd"`
	Args        map[string]any `yaml:"args"`
	Description string         `yaml:"description"`
}

// StepResult records one executed step.
type StepResult struct {
	Index int    `json:"index"`
	Cmd   string `json:"cmd"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RunResult aggregates one script run.
type RunResult struct {
	Name       string                    `json:"name"`
	Steps      []StepResult              `json:"steps"`
	Passed     int                       `json:"passed"`
	Failed     int                       `json:"failed"`
	RolledBack bool                      `json:"rolled_back"`
	Report     *forge.VerificationReport `json:"verification,omitempty"`
	Saved      bool                      `json:"saved"`
}

// OK reports whether every step ran, nothing rolled back, and any
// requested verification passed.
func (r *RunResult) OK() bool {
	if r.Failed > 0 || r.RolledBack {
		return false
	}
	if r.Report != nil && !r.Report.AllPassed {
		return false
	}
	return true
}
