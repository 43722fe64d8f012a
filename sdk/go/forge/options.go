package forge

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client at creation time.
type Option func(*clientConfig)

type clientConfig struct {
	host        string
	port        int
	timeout     time.Duration
	verify      bool
	verbose     bool
	logger      *slog.Logger
	httpClient  *http.Client
	baseURL     string
	historyPath string
}

// WithHost sets the editor host (default loopback).
func WithHost(host string) Option {
	return func(c *clientConfig) { c.host = host }
}

// WithPort sets the Remote Control API port (default 30010).
func WithPort(port int) Option {
	return func(c *clientConfig) { c.port = port }
}

// WithTimeout bounds each command round trip (default 30s). A timed-out
// call leaves editor state unknown; re-query rather than assume.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithVerify controls the constitution gate on mutating operations
// (default true). Disabling it trades the check-then-act guarantee for
// one fewer round trip per mutation — a deliberate trust/speed trade-off
// for trusted automation, not a recommended default.
func WithVerify(enabled bool) Option {
	return func(c *clientConfig) { c.verify = enabled }
}

// WithVerbose logs every request and reply at debug level.
func WithVerbose() Option {
	return func(c *clientConfig) { c.verbose = true }
}

// WithLogger sets the logger used for verbose wire logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithHTTPClient overrides the HTTP client, primarily for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithBaseURL overrides the full endpoint URL, primarily for tests.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) { c.baseURL = url }
}

// WithHistory records every round trip into a SQLite ledger at path.
func WithHistory(path string) Option {
	return func(c *clientConfig) { c.historyPath = path }
}
