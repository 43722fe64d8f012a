package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ueagentforge/forge/internal/history"
	"github.com/ueagentforge/forge/internal/model"
	"github.com/ueagentforge/forge/internal/transport"
)

// Client issues commands to one editor session. It holds no remote state
// beyond the transport session and a single open-transaction flag.
type Client struct {
	tr     *transport.Transport
	verify bool
	hist   *history.Store
	txOpen bool
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{verify: true}
	for _, o := range opts {
		o(&cfg)
	}

	logger := cfg.logger
	if logger == nil && cfg.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var hist *history.Store
	if cfg.historyPath != "" {
		var err error
		hist, err = history.Open(cfg.historyPath)
		if err != nil {
			return nil, fmt.Errorf("forge: open history: %w", err)
		}
	}

	return &Client{
		tr: transport.New(transport.Config{
			Host:    cfg.host,
			Port:    cfg.port,
			Timeout: cfg.timeout,
			Client:  cfg.httpClient,
			BaseURL: cfg.baseURL,
			Logger:  logger,
		}),
		verify: cfg.verify,
		hist:   hist,
	}, nil
}

// Close releases the history ledger, if one is configured.
func (c *Client) Close() error {
	if c.hist != nil {
		return c.hist.Close()
	}
	return nil
}

// Verifying reports whether the constitution gate is enabled.
func (c *Client) Verifying() bool { return c.verify }

// URL returns the endpoint this client targets.
func (c *Client) URL() string { return c.tr.URL() }

// send performs one round trip and records it in the ledger.
func (c *Client) send(ctx context.Context, cmd string, args map[string]any) (map[string]any, error) {
	start := time.Now()
	payload, err := c.tr.Send(ctx, cmd, args)
	if c.hist != nil {
		c.record(cmd, args, payload, err, time.Since(start))
	}
	return payload, err
}

// record appends the round trip to the ledger, best effort. A ledger
// write failure never fails the command that produced it.
func (c *Client) record(cmd string, args map[string]any, payload map[string]any, sendErr error, elapsed time.Duration) {
	entry := history.Entry{
		Cmd:        cmd,
		DurationMS: float64(elapsed.Microseconds()) / 1000.0,
	}
	if args != nil {
		if data, err := json.Marshal(args); err == nil {
			entry.Args = string(data)
		}
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	} else {
		res := model.ResultFrom(payload)
		entry.OK = res.OK
		entry.Error = res.Err
	}
	_ = c.hist.Record(context.Background(), entry)
}

// Execute runs any command by name and returns a normalized Result. This
// is the escape hatch for commands outside the typed catalogue; the
// command-level outcome is data on the Result, not a Go error.
func (c *Client) Execute(ctx context.Context, cmd string, args map[string]any) (Result, error) {
	payload, err := c.send(ctx, cmd, args)
	if err != nil {
		return Result{}, err
	}
	return model.ResultFrom(payload), nil
}

// EnforceConstitution asks the editor whether a described action is
// permitted. Pure remote round trip: no caching, no local rules — the
// constitution lives host-side and is treated as an opaque oracle.
func (c *Client) EnforceConstitution(ctx context.Context, actionDescription string) (PolicyDecision, error) {
	payload, err := c.send(ctx, "enforce_constitution", map[string]any{
		"action_description": actionDescription,
	})
	if err != nil {
		return PolicyDecision{}, err
	}
	return model.DecisionFrom(payload), nil
}

// gated runs the check-then-act sequence for a mutating command: the
// constitution is consulted strictly before the command is issued, so a
// denied action has zero observable side effect.
func (c *Client) gated(ctx context.Context, description, cmd string, args map[string]any) (Result, error) {
	if c.verify {
		decision, err := c.EnforceConstitution(ctx, description)
		if err != nil {
			return Result{}, err
		}
		if !decision.Allowed {
			return Result{}, &PermissionError{Action: description, Violations: decision.Violations}
		}
	}
	return c.Execute(ctx, cmd, args)
}

// RunVerification invokes the phased check protocol and aggregates the
// outcome. The mask is a request: the report reflects what the host
// actually ran. No retries, no interpretation — callers gate on
// Report.AllPassed.
func (c *Client) RunVerification(ctx context.Context, mask PhaseMask) (VerificationReport, error) {
	payload, err := c.send(ctx, "run_verification", map[string]any{"phase_mask": int(mask)})
	if err != nil {
		return VerificationReport{}, err
	}
	return model.ReportFrom(payload), nil
}

// History returns the newest ledger entries, or nil when no ledger is
// configured.
func (c *Client) History(ctx context.Context, limit int) ([]history.Entry, error) {
	if c.hist == nil {
		return nil, nil
	}
	return c.hist.Recent(ctx, limit)
}
