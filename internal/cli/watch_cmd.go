package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/internal/watch"
	"github.com/ueagentforge/forge/sdk/go/forge"
)

var (
	watchDir      string
	watchExts     []string
	watchPhases   int
	watchDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "Content directory to watch (required)")
	watchCmd.Flags().StringSliceVar(&watchExts, "ext", []string{".uasset", ".umap"}, "File extensions that trigger verification")
	watchCmd.Flags().IntVar(&watchPhases, "phases", int(forge.PhaseAll),
		"Phase bitmask: 1=PreFlight 2=Snapshot+Rollback 4=PostVerify 8=BuildCheck")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period after the last change (default 500ms)")
	watchCmd.MarkFlagRequired("dir")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run verification when content files change",
	Long: "Watches a content directory and runs the verification protocol\n" +
		"after each burst of changes. Runs until interrupted.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	w := watch.New(client, watch.Config{
		Dir:      watchDir,
		Exts:     watchExts,
		Mask:     forge.PhaseMask(watchPhases),
		Debounce: watchDebounce,
		OnReport: func(changed []string, report forge.VerificationReport) {
			fmt.Printf("%d files changed\n", len(changed))
			fmt.Print(report.Summary())
		},
		OnError: func(err error) {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		},
	})

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("watching %s for %v\n", watchDir, watchExts)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
