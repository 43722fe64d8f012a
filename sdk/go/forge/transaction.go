package forge

import (
	"context"
	"fmt"
)

// defaultTransactionLabel names scopes whose caller passed none.
const defaultTransactionLabel = "AgentForge"

// BeginTransaction opens the editor's undo boundary. The editor supports
// one open boundary per session; a second begin while one is open returns
// ErrTransactionOpen without touching the host.
func (c *Client) BeginTransaction(ctx context.Context, label string) (Result, error) {
	if c.txOpen {
		return Result{}, ErrTransactionOpen
	}
	if label == "" {
		label = defaultTransactionLabel
	}
	res, err := c.Execute(ctx, "begin_transaction", map[string]any{"label": label})
	if err == nil && res.OK {
		c.txOpen = true
	}
	return res, err
}

// EndTransaction commits the open undo boundary.
func (c *Client) EndTransaction(ctx context.Context) (Result, error) {
	c.txOpen = false
	return c.Execute(ctx, "end_transaction", nil)
}

// UndoTransaction rolls the open undo boundary back.
func (c *Client) UndoTransaction(ctx context.Context) (Result, error) {
	c.txOpen = false
	return c.Execute(ctx, "undo_transaction", nil)
}

// WithTransaction brackets fn in a transaction scope. A nil return from
// fn commits; an error or panic rolls back and then re-surfaces the
// original failure unchanged. Exactly one of commit or rollback is sent
// per scope — and neither when begin itself fails, since there is nothing
// to close.
func (c *Client) WithTransaction(ctx context.Context, label string, fn func(*Client) error) (err error) {
	res, beginErr := c.BeginTransaction(ctx, label)
	if beginErr != nil {
		return beginErr
	}
	if !res.OK {
		return fmt.Errorf("forge: begin_transaction %q failed: %s", label, res.Err)
	}

	defer func() {
		if r := recover(); r != nil {
			_, _ = c.UndoTransaction(ctx)
			panic(r)
		}
		if err != nil {
			// The body's failure is the caller's signal; a rollback
			// failure on top of it is reported by the host on the next
			// command.
			_, _ = c.UndoTransaction(ctx)
			return
		}
		endRes, endErr := c.EndTransaction(ctx)
		if endErr != nil {
			err = endErr
			return
		}
		if !endRes.OK {
			err = fmt.Errorf("forge: end_transaction failed: %s", endRes.Err)
		}
	}()

	return fn(c)
}
