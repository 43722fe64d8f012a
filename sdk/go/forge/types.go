package forge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ueagentforge/forge/internal/model"
	"github.com/ueagentforge/forge/internal/transport"
)

// Normalized reply shapes, shared with the internal packages.
type (
	Result             = model.Result
	VerificationReport = model.VerificationReport
	PhaseResult        = model.PhaseResult
	PhaseMask          = model.PhaseMask
	PolicyDecision     = model.PolicyDecision
	Actor              = model.Actor
	PerfStats          = model.PerfStats
	Vector             = model.Vector
	Rotator            = model.Rotator
)

// Verification phases. Compose a request mask with bitwise OR; the host
// decides which subset actually runs.
const (
	PhasePreFlight        = model.PhasePreFlight
	PhaseSnapshotRollback = model.PhaseSnapshotRollback
	PhasePostVerify       = model.PhasePostVerify
	PhaseBuildCheck       = model.PhaseBuildCheck
	PhaseAll              = model.PhaseAll
)

// Transport error types, re-exported so callers can errors.As against
// them without importing internal packages.
type (
	ConnError     = transport.ConnError
	ProtocolError = transport.ProtocolError
)

// ErrTransactionOpen is returned by BeginTransaction while another
// transaction is open. The editor holds one undo boundary per session;
// nesting is a caller error, not a queued request.
var ErrTransactionOpen = errors.New("forge: a transaction is already open")

// PermissionError means the constitution declined the described action.
// The mutating command was never sent — a denied action has zero side
// effect on editor state.
type PermissionError struct {
	Action     string
	Violations []string
}

func (e *PermissionError) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("forge: constitution blocked %q", e.Action)
	}
	return fmt.Sprintf("forge: constitution blocked %q: %s", e.Action, strings.Join(e.Violations, "; "))
}

// NodeSpec identifies a Blueprint event-graph node and the pin defaults
// to apply to it.
type NodeSpec struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Pins  []Pin  `json:"pins"`
}

// Pin is one node pin default.
type Pin struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
