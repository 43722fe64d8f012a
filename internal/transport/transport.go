// Package transport issues command envelopes to a running Unreal Editor
// over the Remote Control HTTP API. One Transport holds one persistent
// HTTP session; it is safe for sequential reuse. For concurrent callers,
// create one client per goroutine — the ordering guarantee (host observes
// calls in issue order) only holds per transport.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ueagentforge/forge/internal/wire"
)

const (
	// DefaultHost is the loopback editor address.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the Remote Control API port.
	DefaultPort = 30010
	// DefaultTimeout bounds each command round trip.
	DefaultTimeout = 30 * time.Second

	endpointPath = "/remote/object/call"
)

// maxErrorBody caps how much of an HTTP error body is kept for messages.
const maxErrorBody = 512

// ConnError means the editor could not be reached at all: refused,
// unreachable, or the round trip timed out. Never retried automatically.
type ConnError struct {
	Target  string
	Timeout bool
	Err     error
}

func (e *ConnError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("forge: command to %s timed out: %v — the editor may be blocked on a modal dialog or a long task; re-query state before assuming the command did or did not apply", e.Target, e.Err)
	}
	return fmt.Sprintf("forge: cannot connect to Unreal Editor at %s: %v — ensure the editor is running with the Remote Control API enabled", e.Target, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// ProtocolError means the editor answered, but not with a usable command
// reply: a non-2xx status or a malformed envelope. Distinct from a
// command-level failure, which arrives inside a structurally valid reply.
type ProtocolError struct {
	Status int
	Body   string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("forge: remote control returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("forge: malformed reply envelope: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Config holds transport construction parameters. Zero values fall back
// to the defaults above.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration
	// Client overrides the HTTP client, primarily for tests against
	// httptest servers.
	Client *http.Client
	// BaseURL overrides the derived endpoint URL entirely (tests).
	BaseURL string
	// Logger enables request/reply logging at debug level when set.
	Logger *slog.Logger
}

// Transport sends command envelopes over one persistent HTTP session.
type Transport struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// New builds a transport from cfg.
func New(cfg Config) *Transport {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + endpointPath
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	} else if client.Timeout == 0 {
		client.Timeout = timeout
	}

	return &Transport{
		baseURL: baseURL,
		client:  client,
		log:     cfg.Logger,
	}
}

// URL returns the endpoint this transport targets.
func (t *Transport) URL() string { return t.baseURL }

// Send issues one command round trip and returns the decoded payload.
// The payload still carries command-level success or failure; Send only
// fails for transport and protocol problems.
func (t *Transport) Send(ctx context.Context, cmd string, args map[string]any) (map[string]any, error) {
	body, err := wire.Encode(cmd, args)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, t.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("forge: build request for %q: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")

	if t.log != nil {
		t.log.Debug("forge request", "cmd", cmd, "args", args)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &ConnError{Target: t.baseURL, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnError{Target: t.baseURL, Timeout: isTimeout(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProtocolError{Status: resp.StatusCode, Body: truncate(data)}
	}

	payload, err := wire.DecodeReply(data)
	if err != nil {
		return nil, &ProtocolError{Err: err}
	}

	if t.log != nil {
		t.log.Debug("forge reply", "cmd", cmd, "payload", payload)
	}
	return payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(data []byte) string {
	if len(data) > maxErrorBody {
		return string(data[:maxErrorBody]) + "..."
	}
	return string(data)
}
