package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(levelCmd)
}

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Print the currently open level",
	RunE:  runLevel,
}

func runLevel(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.CurrentLevel(ctx)
	if err != nil {
		return err
	}
	pkg, _ := res.Str("package_path")
	world, _ := res.Str("world_path")
	fmt.Printf("%s (%s)\n", pkg, world)
	return nil
}
