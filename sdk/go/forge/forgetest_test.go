package forge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeHost is a scripted stand-in for the editor plugin. Handlers are
// keyed by command name; unhandled commands answer {"ok": true}. Every
// received command name is recorded in order.
type fakeHost struct {
	t        *testing.T
	mu       sync.Mutex
	commands []string
	handlers map[string]func(args map[string]any) map[string]any
}

func newFakeHost(t *testing.T) *fakeHost {
	return &fakeHost{
		t:        t,
		handlers: map[string]func(args map[string]any) map[string]any{},
	}
}

func (h *fakeHost) handle(cmd string, fn func(args map[string]any) map[string]any) {
	h.handlers[cmd] = fn
}

func (h *fakeHost) reply(cmd string, payload map[string]any) {
	h.handle(cmd, func(map[string]any) map[string]any { return payload })
}

// sent returns how many times cmd was received.
func (h *fakeHost) sent(cmd string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, c := range h.commands {
		if c == cmd {
			n++
		}
	}
	return n
}

func (h *fakeHost) sequence() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.commands...)
}

func (h *fakeHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Parameters struct {
			RequestJSON string `json:"RequestJson"`
		} `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.t.Errorf("fake host: decode request: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var envelope struct {
		Cmd  string         `json:"cmd"`
		Args map[string]any `json:"args"`
	}
	if err := json.Unmarshal([]byte(body.Parameters.RequestJSON), &envelope); err != nil {
		h.t.Errorf("fake host: decode envelope: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.commands = append(h.commands, envelope.Cmd)
	h.mu.Unlock()

	payload := map[string]any{"ok": true}
	if fn, ok := h.handlers[envelope.Cmd]; ok {
		payload = fn(envelope.Args)
	}

	// Reply the way the editor does: the payload as a JSON string under
	// ReturnValue.
	inner, err := json.Marshal(payload)
	if err != nil {
		h.t.Errorf("fake host: marshal payload: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ReturnValue": string(inner)})
}

// newTestClient wires a client to a fake host.
func newTestClient(t *testing.T, host *fakeHost, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(host)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL + "/remote/object/call"), WithHTTPClient(srv.Client())}, opts...)
	client, err := New(opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}
