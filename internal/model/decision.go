package model

// PolicyDecision is the constitution's answer for one described action.
// Ephemeral by design: never cached or persisted, re-evaluated on every
// gated call.
type PolicyDecision struct {
	Allowed    bool
	Violations []string
}

// DecisionFrom derives a PolicyDecision from a decoded reply. An absent
// "allowed" field reads as permitted — the plugin replies with an
// explicit false plus violations when it blocks.
func DecisionFrom(payload map[string]any) PolicyDecision {
	d := PolicyDecision{Allowed: true}

	if v, present := payload["allowed"]; present {
		b, ok := v.(bool)
		d.Allowed = ok && b
	}

	violations, _ := payload["violations"].([]any)
	for _, v := range violations {
		if s, ok := v.(string); ok {
			d.Violations = append(d.Violations, s)
		}
	}
	return d
}
