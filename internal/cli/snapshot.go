package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <name>",
	Short: "Capture the current level state under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.CreateSnapshot(ctx, args[0])
	if err != nil {
		exitOnBlocked(err)
		return err
	}
	if !res.OK {
		return fmt.Errorf("snapshot failed: %s", res.Err)
	}
	fmt.Printf("snapshot %s created\n", args[0])
	return nil
}
