package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// scriptedEditor answers plugin command envelopes from canned payloads
// and records which commands arrived.
type scriptedEditor struct {
	commands []string
	replies  map[string]map[string]any
}

func (e *scriptedEditor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Parameters struct {
			RequestJSON string `json:"RequestJson"`
		} `json:"parameters"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	var envelope struct {
		Cmd string `json:"cmd"`
	}
	json.Unmarshal([]byte(body.Parameters.RequestJSON), &envelope)
	e.commands = append(e.commands, envelope.Cmd)

	payload, ok := e.replies[envelope.Cmd]
	if !ok {
		payload = map[string]any{"ok": true}
	}
	inner, _ := json.Marshal(payload)
	json.NewEncoder(w).Encode(map[string]any{"ReturnValue": string(inner)})
}

func newTestServer(t *testing.T, editor *scriptedEditor) *Server {
	t.Helper()
	srv := httptest.NewServer(editor)
	t.Cleanup(srv.Close)
	client, err := forge.New(
		forge.WithBaseURL(srv.URL+"/remote/object/call"),
		forge.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewWithClient(client)
}

func TestHandlePing(t *testing.T) {
	editor := &scriptedEditor{replies: map[string]map[string]any{
		"ping": {
			"pong": "UEAgentForge v0.1.0", "version": "0.1.0",
			"constitution_loaded": true, "constitution_rules": 7.0,
		},
	}}
	s := newTestServer(t, editor)

	_, out, err := s.handlePing(context.Background(), nil, PingInput{})
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if out.Version != "0.1.0" || !out.ConstitutionLoaded || out.ConstitutionRules != 7 {
		t.Errorf("out = %+v", out)
	}
}

func TestHandleSpawnBlockedByConstitution(t *testing.T) {
	editor := &scriptedEditor{replies: map[string]map[string]any{
		"enforce_constitution": {
			"allowed":    false,
			"violations": []any{"rule 5: actor budget exceeded"},
		},
	}}
	s := newTestServer(t, editor)

	result, out, err := s.handleSpawnActor(context.Background(), nil, SpawnActorInput{
		ClassPath: "/Script/Engine.StaticMeshActor",
		Z:         100,
	})
	if err != nil {
		t.Fatalf("blocked spawn must be a tool error, not a handler error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("blocked spawn must set IsError")
	}
	if !out.Blocked || len(out.Violations) != 1 {
		t.Errorf("out = %+v", out)
	}
	// The mutation never reached the editor.
	for _, cmd := range editor.commands {
		if cmd == "spawn_actor" {
			t.Error("spawn_actor sent despite denial")
		}
	}
}

func TestHandleRunVerificationFailure(t *testing.T) {
	editor := &scriptedEditor{replies: map[string]map[string]any{
		"run_verification": {
			"all_passed": false,
			"phases_run": 2.0,
			"details": []any{
				map[string]any{"phase": "PreFlight", "passed": true, "detail": "", "duration_ms": 1.0},
				map[string]any{"phase": "BuildCheck", "passed": false, "detail": "compile errors", "duration_ms": 80.0},
			},
		},
	}}
	s := newTestServer(t, editor)

	result, out, err := s.handleRunVerification(context.Background(), nil, RunVerificationInput{PhaseMask: 15})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("failed verification must set IsError")
	}
	if out.AllPassed || out.PhasesRun != 2 {
		t.Errorf("out = %+v", out)
	}
}

func TestHandleExecuteEscapeHatch(t *testing.T) {
	editor := &scriptedEditor{replies: map[string]map[string]any{
		"take_screenshot": {"ok": true, "path": "/tmp/shot.png"},
	}}
	s := newTestServer(t, editor)

	_, out, err := s.handleExecute(context.Background(), nil, ExecuteInput{
		Cmd:      "take_screenshot",
		ArgsJSON: `{"filename": "shot"}`,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !out.OK {
		t.Errorf("out = %+v", out)
	}

	if _, _, err := s.handleExecute(context.Background(), nil, ExecuteInput{Cmd: "x", ArgsJSON: "nope"}); err == nil {
		t.Error("invalid args_json must error")
	}
}
