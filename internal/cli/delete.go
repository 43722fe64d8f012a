package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <actor-label>",
	Short: "Delete the labeled actor from the level",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.DeleteActor(ctx, args[0])
	if err != nil {
		exitOnBlocked(err)
		return err
	}
	if !res.OK {
		return fmt.Errorf("delete failed: %s", res.Err)
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
