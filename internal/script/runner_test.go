package script

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// fakeEditor answers command envelopes from a handler map and records
// the order commands arrived in.
type fakeEditor struct {
	commands []string
	handlers map[string]func(args map[string]any) map[string]any
}

func (f *fakeEditor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Parameters struct {
			RequestJSON string `json:"RequestJson"`
		} `json:"parameters"`
	}
	json.NewDecoder(r.Body).Decode(&body)
	var envelope struct {
		Cmd  string         `json:"cmd"`
		Args map[string]any `json:"args"`
	}
	json.Unmarshal([]byte(body.Parameters.RequestJSON), &envelope)
	f.commands = append(f.commands, envelope.Cmd)

	payload := map[string]any{"ok": true}
	if fn, ok := f.handlers[envelope.Cmd]; ok {
		payload = fn(envelope.Args)
	}
	inner, _ := json.Marshal(payload)
	json.NewEncoder(w).Encode(map[string]any{"ReturnValue": string(inner)})
}

func (f *fakeEditor) sent(cmd string) int {
	n := 0
	for _, c := range f.commands {
		if c == cmd {
			n++
		}
	}
	return n
}

func newScriptClient(t *testing.T, editor *fakeEditor) *forge.Client {
	t.Helper()
	if editor.handlers == nil {
		editor.handlers = map[string]func(map[string]any) map[string]any{}
	}
	srv := httptest.NewServer(editor)
	t.Cleanup(srv.Close)
	client, err := forge.New(
		forge.WithBaseURL(srv.URL+"/remote/object/call"),
		forge.WithHTTPClient(srv.Client()),
		forge.WithVerify(false),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const placementScript = `
name: place props
transaction: Place props
verify_mask: 5
save: true
steps:
  - cmd: spawn_actor
    args:
      class_path: /Script/Engine.StaticMeshActor
      z: 100
    description: drop a cube
  - cmd: spawn_actor
    args:
      class_path: /Script/Engine.PointLight
      z: 300
`

func TestRunCommitsAndSaves(t *testing.T) {
	editor := &fakeEditor{handlers: map[string]func(map[string]any) map[string]any{
		"run_verification": func(args map[string]any) map[string]any {
			if mask, _ := args["phase_mask"].(float64); int(mask) != 5 {
				t.Errorf("phase_mask = %v, want 5", args["phase_mask"])
			}
			return map[string]any{
				"all_passed": true,
				"phases_run": 2.0,
				"details": []any{
					map[string]any{"phase": "PreFlight", "passed": true, "detail": "", "duration_ms": 1.0},
					map[string]any{"phase": "PostVerify", "passed": true, "detail": "", "duration_ms": 2.0},
				},
			}
		},
	}}
	client := newScriptClient(t, editor)

	run, err := LoadAndRun(context.Background(), client, writeScript(t, placementScript))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !run.OK() {
		t.Errorf("run not ok: %s", FormatText(run))
	}
	if run.Passed != 2 || run.Failed != 0 {
		t.Errorf("passed/failed = %d/%d", run.Passed, run.Failed)
	}
	if !run.Saved {
		t.Error("level must be saved after passing verification")
	}
	if editor.sent("end_transaction") != 1 || editor.sent("undo_transaction") != 0 {
		t.Error("successful script must commit exactly once")
	}
}

func TestRunRollsBackOnStepFailure(t *testing.T) {
	editor := &fakeEditor{handlers: map[string]func(map[string]any) map[string]any{
		"delete_actor": func(map[string]any) map[string]any {
			return map[string]any{"error": "Actor not found: Ghost"}
		},
	}}
	client := newScriptClient(t, editor)

	run, err := Run(context.Background(), client, &Script{
		Name: "doomed",
		Steps: []Step{
			{Cmd: "spawn_actor", Args: map[string]any{"class_path": "/Script/Engine.StaticMeshActor"}},
			{Cmd: "delete_actor", Args: map[string]any{"label": "Ghost"}},
			{Cmd: "spawn_actor"},
		},
	})
	if err != nil {
		t.Fatalf("step failure must be reported in the result, not as an error: %v", err)
	}
	if run.OK() {
		t.Error("run must fail")
	}
	if !run.RolledBack {
		t.Error("failed script must roll back")
	}
	if len(run.Steps) != 2 {
		t.Errorf("steps after the failure must not run, got %d results", len(run.Steps))
	}
	if editor.sent("undo_transaction") != 1 || editor.sent("end_transaction") != 0 {
		t.Error("failed script must roll back exactly once and never commit")
	}
}

func TestRunSkipsSaveWhenVerificationFails(t *testing.T) {
	editor := &fakeEditor{handlers: map[string]func(map[string]any) map[string]any{
		"run_verification": func(map[string]any) map[string]any {
			return map[string]any{
				"all_passed": false,
				"phases_run": 1.0,
				"details": []any{
					map[string]any{"phase": "PreFlight", "passed": false, "detail": "constitution violation", "duration_ms": 1.0},
				},
			}
		},
	}}
	client := newScriptClient(t, editor)

	run, err := Run(context.Background(), client, &Script{
		Name:       "unsafe",
		VerifyMask: int(forge.PhaseAll),
		Save:       true,
		Steps:      []Step{{Cmd: "spawn_actor"}},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if run.OK() {
		t.Error("failed verification must fail the run")
	}
	if run.Saved {
		t.Error("save must be gated on AllPassed")
	}
	if editor.sent("save_current_level") != 0 {
		t.Error("save_current_level must never be sent after failed verification")
	}
}

func TestLoadValidates(t *testing.T) {
	if _, err := Load(writeScript(t, "name: empty\nsteps: []\n")); err == nil {
		t.Error("expected error for empty steps")
	}
	if _, err := Load(writeScript(t, "steps:\n  - args: {x: 1}\n")); err == nil {
		t.Error("expected error for step without cmd")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatTextListsFailure(t *testing.T) {
	run := &RunResult{
		Name:   "demo",
		Passed: 1,
		Failed: 1,
		Steps: []StepResult{
			{Index: 0, Cmd: "spawn_actor", OK: true},
			{Index: 1, Cmd: "delete_actor", Error: "Actor not found"},
		},
		RolledBack: true,
	}
	text := FormatText(run)
	if !strings.Contains(text, "FAIL  demo") {
		t.Errorf("verdict missing:\n%s", text)
	}
	if !strings.Contains(text, "FAIL  1 delete_actor: Actor not found") {
		t.Errorf("failed step missing:\n%s", text)
	}
	if !strings.Contains(text, "rolled back") {
		t.Errorf("rollback note missing:\n%s", text)
	}
}
