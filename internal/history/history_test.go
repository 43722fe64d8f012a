package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	entries := []Entry{
		{Cmd: "ping", Args: "{}", OK: true, DurationMS: 2.5},
		{Cmd: "spawn_actor", Args: `{"class_path":"/Script/Engine.StaticMeshActor"}`, OK: true, DurationMS: 18.0},
		{Cmd: "delete_actor", Args: `{"label":"Ghost"}`, OK: false, Error: "Actor not found: Ghost", DurationMS: 4.1},
	}
	for _, e := range entries {
		if err := store.Record(ctx, e); err != nil {
			t.Fatalf("record %s: %v", e.Cmd, err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("recent = %d entries, want 3", len(got))
	}
	// Most recent first.
	if got[0].Cmd != "delete_actor" || got[0].OK || got[0].Error == "" {
		t.Errorf("newest entry wrong: %+v", got[0])
	}
	if got[2].Cmd != "ping" || !got[2].OK {
		t.Errorf("oldest entry wrong: %+v", got[2])
	}
}

func TestLedgerSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	if err := store.Record(ctx, Entry{At: at, Cmd: "create_snapshot", Args: `{"snapshot_name":"s1"}`, OK: true, DurationMS: 90}); err != nil {
		t.Fatalf("record: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count after reopen = %d, want 1", n)
	}

	got, err := store.Recent(ctx, 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("recent: %v (%d entries)", err, len(got))
	}
	if !got[0].At.Equal(at) {
		t.Errorf("At = %v, want %v (millisecond UTC round trip)", got[0].At, at)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
