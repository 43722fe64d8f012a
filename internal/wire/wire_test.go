package wire

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEncodeShape(t *testing.T) {
	body, err := Encode("spawn_actor", map[string]any{"class_path": "/Script/Engine.StaticMeshActor", "x": 100.0})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		t.Fatalf("call body is not valid JSON: %v", err)
	}
	if outer["objectPath"] != ObjectPath {
		t.Errorf("objectPath = %v, want %v", outer["objectPath"], ObjectPath)
	}
	if outer["functionName"] != FunctionName {
		t.Errorf("functionName = %v, want %v", outer["functionName"], FunctionName)
	}

	params, ok := outer["parameters"].(map[string]any)
	if !ok {
		t.Fatalf("parameters missing or wrong type: %v", outer["parameters"])
	}
	reqJSON, ok := params["RequestJson"].(string)
	if !ok {
		t.Fatal("RequestJson must be a JSON string, not an object")
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(reqJSON), &envelope); err != nil {
		t.Fatalf("RequestJson is not valid JSON: %v", err)
	}
	if envelope["cmd"] != "spawn_actor" {
		t.Errorf("cmd = %v, want spawn_actor", envelope["cmd"])
	}
	args, ok := envelope["args"].(map[string]any)
	if !ok {
		t.Fatal("args missing from envelope")
	}
	if args["x"] != 100.0 {
		t.Errorf("args.x = %v, want 100", args["x"])
	}
}

func TestEncodeNilArgsBecomesEmptyMap(t *testing.T) {
	body, err := Encode("ping", nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var outer struct {
		Parameters struct {
			RequestJSON string `json:"RequestJson"`
		} `json:"parameters"`
	}
	if err := json.Unmarshal(body, &outer); err != nil {
		t.Fatal(err)
	}
	var envelope map[string]any
	if err := json.Unmarshal([]byte(outer.Parameters.RequestJSON), &envelope); err != nil {
		t.Fatal(err)
	}
	args, present := envelope["args"]
	if !present {
		t.Fatal("args must always be present in the envelope")
	}
	if m, ok := args.(map[string]any); !ok || len(m) != 0 {
		t.Errorf("args = %v, want empty map", args)
	}
}

func TestEncodeEmptyCommand(t *testing.T) {
	if _, err := Encode("", nil); err == nil {
		t.Fatal("expected error for empty command name")
	}
}

// Encoding transparency: a ReturnValue delivered as a JSON-encoded string
// must decode to the same mapping as the same object delivered structured.
func TestDecodeReplyEncodingTransparency(t *testing.T) {
	structured := []byte(`{"ReturnValue": {"ok": true, "spawned_name": "A_1"}}`)
	stringified := []byte(`{"ReturnValue": "{\"ok\": true, \"spawned_name\": \"A_1\"}"}`)

	a, err := DecodeReply(structured)
	if err != nil {
		t.Fatalf("structured: %v", err)
	}
	b, err := DecodeReply(stringified)
	if err != nil {
		t.Fatalf("stringified: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("decoded mappings differ:\nstructured:  %v\nstringified: %v", a, b)
	}
}

func TestDecodeReplyRawFallback(t *testing.T) {
	payload, err := DecodeReply([]byte(`{"ReturnValue": "not json at all"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["raw"] != "not json at all" {
		t.Errorf("raw = %v, want original string preserved", payload["raw"])
	}
}

func TestDecodeReplyNoReturnValue(t *testing.T) {
	payload, err := DecodeReply([]byte(`{"ok": true, "pong": "direct"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["pong"] != "direct" {
		t.Errorf("body without ReturnValue should decode as-is, got %v", payload)
	}
}

func TestDecodeReplyMalformedBody(t *testing.T) {
	if _, err := DecodeReply([]byte(`{truncated`)); err == nil {
		t.Fatal("expected error for malformed reply body")
	}
}
