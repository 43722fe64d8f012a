package model

import (
	"math/bits"
	"strings"
)

// PhaseMask selects which stages of the plugin's verification protocol to
// request. The mask is a request, not a guarantee — the host decides
// which subset actually runs and reports it back in phases_run.
type PhaseMask int

const (
	// PhasePreFlight runs constitution and sanity checks, read-only.
	PhasePreFlight PhaseMask = 1 << iota
	// PhaseSnapshotRollback captures state and proves rollback recovers it.
	PhaseSnapshotRollback
	// PhasePostVerify validates the mutated scene state.
	PhasePostVerify
	// PhaseBuildCheck validates compiled and derived artifacts.
	PhaseBuildCheck
)

// PhaseAll requests every phase.
const PhaseAll = PhasePreFlight | PhaseSnapshotRollback | PhasePostVerify | PhaseBuildCheck

var phaseNames = []struct {
	bit  PhaseMask
	name string
}{
	{PhasePreFlight, "PreFlight"},
	{PhaseSnapshotRollback, "Snapshot+Rollback"},
	{PhasePostVerify, "PostVerify"},
	{PhaseBuildCheck, "BuildCheck"},
}

// Count reports how many phases the mask requests.
func (m PhaseMask) Count() int {
	return bits.OnesCount(uint(m & PhaseAll))
}

func (m PhaseMask) String() string {
	var names []string
	for _, p := range phaseNames {
		if m&p.bit != 0 {
			names = append(names, p.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
