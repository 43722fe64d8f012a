// Package watch re-runs editor verification when project content files
// change on disk. Change bursts (a save touching dozens of assets) are
// debounced into a single verification round trip.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// debounceDefault is the quiet period after the last file event before
// verification runs.
const debounceDefault = 500 * time.Millisecond

// Verifier is the slice of the client the watcher needs.
type Verifier interface {
	RunVerification(ctx context.Context, mask forge.PhaseMask) (forge.VerificationReport, error)
}

// Watcher triggers verification runs on content changes.
type Watcher struct {
	dir      string
	exts     []string
	mask     forge.PhaseMask
	debounce time.Duration
	verifier Verifier
	onReport func(changed []string, report forge.VerificationReport)
	onError  func(err error)
}

// Config holds watcher construction parameters.
type Config struct {
	// Dir is the content directory to watch.
	Dir string
	// Exts filters events by file extension (e.g. ".uasset", ".umap").
	// Empty watches everything.
	Exts []string
	// Mask selects the verification phases to request per run.
	Mask forge.PhaseMask
	// Debounce overrides the default quiet period.
	Debounce time.Duration
	// OnReport receives the changed paths and the resulting report.
	OnReport func(changed []string, report forge.VerificationReport)
	// OnError receives verification round-trip failures. The watcher
	// keeps running; a down editor should not kill the watch loop.
	OnError func(err error)
}

// New creates a watcher over cfg driving the given verifier.
func New(verifier Verifier, cfg Config) *Watcher {
	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = debounceDefault
	}
	mask := cfg.Mask
	if mask == 0 {
		mask = forge.PhaseAll
	}
	return &Watcher{
		dir:      cfg.Dir,
		exts:     cfg.Exts,
		mask:     mask,
		debounce: debounce,
		verifier: verifier,
		onReport: cfg.OnReport,
		onError:  cfg.OnError,
	}
}

// Run watches until ctx is cancelled. A single timer resets on each
// event; when it fires, all paths accumulated during the burst flush
// into one verification run.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return err
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			pending = make(map[string]bool)

			report, err := w.verifier.RunVerification(ctx, w.mask)
			if err != nil {
				if w.onError != nil {
					w.onError(err)
				}
				continue
			}
			if w.onReport != nil {
				w.onReport(changed, report)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	for _, want := range w.exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
