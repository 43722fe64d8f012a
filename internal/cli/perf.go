package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(perfCmd)
}

var perfCmd = &cobra.Command{
	Use:   "perf",
	Short: "Sample the editor's performance counters",
	RunE:  runPerf,
}

func runPerf(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	stats, err := client.PerfStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("actors:      %d (%d components)\n", stats.ActorCount, stats.ComponentCount)
	fmt.Printf("draw calls:  %d (%d primitives)\n", stats.DrawCalls, stats.Primitives)
	fmt.Printf("gpu:         %.2f ms\n", stats.GPUMs)
	fmt.Printf("memory:      %.1f / %.1f MB\n", stats.MemoryUsedMB, stats.MemoryTotalMB)
	return nil
}
