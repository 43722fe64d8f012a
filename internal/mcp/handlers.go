package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// --- Input/Output types ---

// PingInput is empty — no parameters needed.
type PingInput struct{}

// PingOutput reports plugin liveness and constitution state.
type PingOutput struct {
	Pong               string `json:"pong"`
	Version            string `json:"version"`
	ConstitutionLoaded bool   `json:"constitution_loaded"`
	ConstitutionRules  int    `json:"constitution_rules"`
}

// ListActorsInput is empty.
type ListActorsInput struct{}

// ActorItem is one actor in the list output.
type ActorItem struct {
	Label string  `json:"label"`
	Class string  `json:"class"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// ListActorsOutput lists the level's actors.
type ListActorsOutput struct {
	Count  int         `json:"count"`
	Actors []ActorItem `json:"actors"`
}

// SpawnActorInput defines parameters for forge_spawn_actor.
type SpawnActorInput struct {
	ClassPath string  `json:"class_path" jsonschema:"actor class path, e.g. /Script/Engine.StaticMeshActor"`
	X         float64 `json:"x,omitempty" jsonschema:"world X position"`
	Y         float64 `json:"y,omitempty" jsonschema:"world Y position"`
	Z         float64 `json:"z,omitempty" jsonschema:"world Z position"`
	Pitch     float64 `json:"pitch,omitempty" jsonschema:"rotation pitch in degrees"`
	Yaw       float64 `json:"yaw,omitempty" jsonschema:"rotation yaw in degrees"`
	Roll      float64 `json:"roll,omitempty" jsonschema:"rotation roll in degrees"`
}

// MutationOutput is the shared result shape for gated mutations.
type MutationOutput struct {
	OK          bool     `json:"ok"`
	SpawnedName string   `json:"spawned_name,omitempty"`
	Error       string   `json:"error,omitempty"`
	Blocked     bool     `json:"blocked,omitempty"`
	Violations  []string `json:"violations,omitempty"`
}

// DeleteActorInput defines parameters for forge_delete_actor.
type DeleteActorInput struct {
	Label string `json:"label" jsonschema:"actor label to delete"`
}

// RunVerificationInput defines parameters for forge_run_verification.
type RunVerificationInput struct {
	PhaseMask int `json:"phase_mask,omitempty" jsonschema:"verification phase bitmask, defaults to 15 (all phases)"`
}

// RunVerificationOutput reports the aggregated verification outcome.
type RunVerificationOutput struct {
	AllPassed bool   `json:"all_passed"`
	PhasesRun int    `json:"phases_run"`
	Summary   string `json:"summary"`
}

// CheckPolicyInput defines parameters for forge_check_policy.
type CheckPolicyInput struct {
	ActionDescription string `json:"action_description" jsonschema:"human-readable description of the intended action"`
}

// CheckPolicyOutput contains the constitution's decision.
type CheckPolicyOutput struct {
	Allowed    bool     `json:"allowed"`
	Violations []string `json:"violations,omitempty"`
}

// PerfStatsInput is empty.
type PerfStatsInput struct{}

// PerfStatsOutput reports editor performance counters.
type PerfStatsOutput struct {
	ActorCount   int     `json:"actor_count"`
	DrawCalls    int     `json:"draw_calls"`
	MemoryUsedMB float64 `json:"memory_used_mb"`
	GPUMs        float64 `json:"gpu_ms"`
}

// ExecuteInput defines parameters for forge_execute.
type ExecuteInput struct {
	Cmd      string `json:"cmd" jsonschema:"plugin command name"`
	ArgsJSON string `json:"args_json,omitempty" jsonschema:"command arguments as a JSON object"`
}

// ExecuteOutput carries the raw normalized result.
type ExecuteOutput struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Payload string `json:"payload"`
}

// --- Handlers ---

func (s *Server) handlePing(ctx context.Context, req *mcpsdk.CallToolRequest, input PingInput) (*mcpsdk.CallToolResult, PingOutput, error) {
	res, err := s.client.Ping(ctx)
	if err != nil {
		return nil, PingOutput{}, err
	}
	out := PingOutput{}
	out.Pong, _ = res.Str("pong")
	out.Version, _ = res.Str("version")
	out.ConstitutionLoaded, _ = res.Bool("constitution_loaded")
	out.ConstitutionRules, _ = res.Int("constitution_rules")
	return nil, out, nil
}

func (s *Server) handleListActors(ctx context.Context, req *mcpsdk.CallToolRequest, input ListActorsInput) (*mcpsdk.CallToolResult, ListActorsOutput, error) {
	actors, err := s.client.ListActors(ctx)
	if err != nil {
		return nil, ListActorsOutput{}, err
	}
	out := ListActorsOutput{Count: len(actors), Actors: make([]ActorItem, 0, len(actors))}
	for _, a := range actors {
		out.Actors = append(out.Actors, ActorItem{
			Label: a.Label,
			Class: a.Class,
			X:     a.Location.X,
			Y:     a.Location.Y,
			Z:     a.Location.Z,
		})
	}
	return nil, out, nil
}

func (s *Server) handleSpawnActor(ctx context.Context, req *mcpsdk.CallToolRequest, input SpawnActorInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	res, err := s.client.SpawnActor(ctx,
		input.ClassPath,
		forge.Vector{X: input.X, Y: input.Y, Z: input.Z},
		forge.Rotator{Pitch: input.Pitch, Yaw: input.Yaw, Roll: input.Roll},
	)
	return mutationResult(res, err)
}

func (s *Server) handleDeleteActor(ctx context.Context, req *mcpsdk.CallToolRequest, input DeleteActorInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	res, err := s.client.DeleteActor(ctx, input.Label)
	return mutationResult(res, err)
}

// mutationResult maps a gated call's outcome to tool output. A blocked
// action is a tool-level error with the violations attached, not a
// transport failure.
func mutationResult(res forge.Result, err error) (*mcpsdk.CallToolResult, MutationOutput, error) {
	if err != nil {
		var denied *forge.PermissionError
		if errors.As(err, &denied) {
			out := MutationOutput{Blocked: true, Violations: denied.Violations, Error: denied.Error()}
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, MutationOutput{}, err
	}
	out := MutationOutput{OK: res.OK, Error: res.Err}
	out.SpawnedName, _ = res.Str("spawned_name")
	if !res.OK {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleRunVerification(ctx context.Context, req *mcpsdk.CallToolRequest, input RunVerificationInput) (*mcpsdk.CallToolResult, RunVerificationOutput, error) {
	mask := forge.PhaseMask(input.PhaseMask)
	if mask == 0 {
		mask = forge.PhaseAll
	}
	report, err := s.client.RunVerification(ctx, mask)
	if err != nil {
		return nil, RunVerificationOutput{}, err
	}
	out := RunVerificationOutput{
		AllPassed: report.AllPassed,
		PhasesRun: report.PhasesRun,
		Summary:   report.Summary(),
	}
	if !report.AllPassed {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleCheckPolicy(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckPolicyInput) (*mcpsdk.CallToolResult, CheckPolicyOutput, error) {
	decision, err := s.client.EnforceConstitution(ctx, input.ActionDescription)
	if err != nil {
		return nil, CheckPolicyOutput{}, err
	}
	return nil, CheckPolicyOutput{Allowed: decision.Allowed, Violations: decision.Violations}, nil
}

func (s *Server) handlePerfStats(ctx context.Context, req *mcpsdk.CallToolRequest, input PerfStatsInput) (*mcpsdk.CallToolResult, PerfStatsOutput, error) {
	stats, err := s.client.PerfStats(ctx)
	if err != nil {
		return nil, PerfStatsOutput{}, err
	}
	return nil, PerfStatsOutput{
		ActorCount:   stats.ActorCount,
		DrawCalls:    stats.DrawCalls,
		MemoryUsedMB: stats.MemoryUsedMB,
		GPUMs:        stats.GPUMs,
	}, nil
}

func (s *Server) handleExecute(ctx context.Context, req *mcpsdk.CallToolRequest, input ExecuteInput) (*mcpsdk.CallToolResult, ExecuteOutput, error) {
	var args map[string]any
	if input.ArgsJSON != "" {
		if err := json.Unmarshal([]byte(input.ArgsJSON), &args); err != nil {
			return nil, ExecuteOutput{}, fmt.Errorf("args_json is not a JSON object: %w", err)
		}
	}
	res, err := s.client.Execute(ctx, input.Cmd, args)
	if err != nil {
		return nil, ExecuteOutput{}, err
	}

	payload, merr := json.Marshal(res.Payload)
	if merr != nil {
		payload = []byte("{}")
	}
	out := ExecuteOutput{OK: res.OK, Error: res.Err, Payload: string(payload)}
	if !res.OK {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}
