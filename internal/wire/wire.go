// Package wire implements the command envelope the UEAgentForge plugin
// accepts through the Unreal Remote Control API. Every command, regardless
// of its semantics, travels as a single JSON envelope {"cmd": ..., "args":
// ...} embedded as a string inside one Remote Control object call.
package wire

import (
	"encoding/json"
	"fmt"
)

// ObjectPath is the Remote Control path of the plugin's command library.
const ObjectPath = "/Script/UEAgentForge.Default__AgentForgeLibrary"

// FunctionName is the single entry point every command routes through.
const FunctionName = "ExecuteCommandJson"

// callBody is the Remote Control request shape. The command envelope is
// double-encoded: the editor expects RequestJson as a JSON string, not an
// object.
type callBody struct {
	ObjectPath   string     `json:"objectPath"`
	FunctionName string     `json:"functionName"`
	Parameters   callParams `json:"parameters"`
}

type callParams struct {
	RequestJSON string `json:"RequestJson"`
}

// Encode builds the Remote Control call body for one command. Args is
// always present in the envelope — the plugin tolerates an absent "args"
// key, but sending an explicit empty map keeps the request shape uniform.
func Encode(cmd string, args map[string]any) ([]byte, error) {
	if cmd == "" {
		return nil, fmt.Errorf("wire: command name is required")
	}
	if args == nil {
		args = map[string]any{}
	}
	envelope, err := json.Marshal(map[string]any{"cmd": cmd, "args": args})
	if err != nil {
		return nil, fmt.Errorf("wire: encode envelope for %q: %w", cmd, err)
	}
	body, err := json.Marshal(callBody{
		ObjectPath:   ObjectPath,
		FunctionName: FunctionName,
		Parameters:   callParams{RequestJSON: string(envelope)},
	})
	if err != nil {
		return nil, fmt.Errorf("wire: encode call body for %q: %w", cmd, err)
	}
	return body, nil
}

// DecodeReply extracts the command payload from a Remote Control reply
// body. The editor wraps the plugin's return value in {"ReturnValue": ...}
// where the value arrives either as a structured object or as a
// JSON-encoded string, depending on editor version. A string that is not
// valid JSON is preserved under "raw" rather than rejected — unparsable
// content is a payload, not a transport failure.
func DecodeReply(body []byte) (map[string]any, error) {
	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, fmt.Errorf("wire: decode reply body: %w", err)
	}
	val, ok := outer["ReturnValue"]
	if !ok {
		return outer, nil
	}
	return coerce(val), nil
}

// coerce normalizes a ReturnValue into a payload map.
func coerce(val any) map[string]any {
	switch v := val.(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m
		}
		return map[string]any{"raw": v}
	case nil:
		return map[string]any{}
	default:
		return map[string]any{"raw": v}
	}
}
