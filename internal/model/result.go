// Package model holds the normalized shapes the client derives from
// decoded command replies: results, verification reports, policy
// decisions, and read-only scene views.
package model

import "fmt"

// Result normalizes a decoded reply into success/error/payload. Owned by
// the caller that issued the command; never shared or mutated afterward.
//
// The success rule is inherited from the plugin and must not be "fixed"
// here: an absent "ok" field defaults to success because read-only
// queries never set it, while an explicit "error" field forces failure
// regardless of any "ok" value. A future plugin version that stopped
// setting "error" on some failure would silently read as success — this
// is a contract with the host, not a client invariant.
type Result struct {
	Payload map[string]any
	OK      bool
	Err     string
}

// ResultFrom derives a Result from a decoded reply payload.
func ResultFrom(payload map[string]any) Result {
	if payload == nil {
		payload = map[string]any{}
	}

	errMsg := ""
	failed := false
	if v, present := payload["error"]; present && v != nil {
		failed = true
		if s, ok := v.(string); ok {
			errMsg = s
		} else {
			errMsg = fmt.Sprintf("%v", v)
		}
	}

	ok := !failed
	if ok {
		if v, present := payload["ok"]; present {
			if b, isBool := v.(bool); isBool && !b {
				ok = false
			}
		}
	}

	return Result{Payload: payload, OK: ok, Err: errMsg}
}

func (r Result) String() string {
	if r.Err != "" {
		return fmt.Sprintf("Result(error: %s)", r.Err)
	}
	return fmt.Sprintf("Result(ok=%t, fields=%d)", r.OK, len(r.Payload))
}

// Str returns a string payload field, with an explicit missing/wrong-type
// error path instead of a silent zero value.
func (r Result) Str(key string) (string, error) {
	v, present := r.Payload[key]
	if !present {
		return "", fmt.Errorf("reply field %q missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("reply field %q is %T, want string", key, v)
	}
	return s, nil
}

// Float returns a numeric payload field. JSON numbers decode as float64.
func (r Result) Float(key string) (float64, error) {
	v, present := r.Payload[key]
	if !present {
		return 0, fmt.Errorf("reply field %q missing", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("reply field %q is %T, want number", key, v)
	}
	return f, nil
}

// Int returns a numeric payload field truncated to int.
func (r Result) Int(key string) (int, error) {
	f, err := r.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Bool returns a boolean payload field.
func (r Result) Bool(key string) (bool, error) {
	v, present := r.Payload[key]
	if !present {
		return false, fmt.Errorf("reply field %q missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("reply field %q is %T, want bool", key, v)
	}
	return b, nil
}
