package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/internal/history"
)

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent commands from the SQLite ledger",
	Long: "Reads the command ledger written by --history (or FORGE_HISTORY)\n" +
		"and prints the newest round trips, most recent first.",
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagHistory == "" {
		return fmt.Errorf("no ledger configured: set --history or FORGE_HISTORY")
	}

	store, err := history.Open(flagHistory)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	entries, err := store.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d of %d recorded round trips\n", len(entries), total)
	for _, e := range entries {
		verdict := "ok  "
		if !e.OK {
			verdict = "FAIL"
		}
		fmt.Printf("  %s  %s  %-24s %7.1fms", e.At.Format("2006-01-02 15:04:05"), verdict, e.Cmd, e.DurationMS)
		if e.Error != "" {
			fmt.Printf("  %s", e.Error)
		}
		fmt.Println()
	}
	return nil
}
