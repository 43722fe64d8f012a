package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var actorsFormat string

func init() {
	rootCmd.AddCommand(actorsCmd)
	actorsCmd.Flags().StringVarP(&actorsFormat, "format", "f", "text", "Output format (text|json)")
}

var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "List every actor in the current level",
	RunE:  runActors,
}

func runActors(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	actors, err := client.ListActors(ctx)
	if err != nil {
		return err
	}

	if actorsFormat == "json" {
		out, err := json.MarshalIndent(actors, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%d actors\n", len(actors))
	for _, a := range actors {
		fmt.Printf("  %-30s %-40s (%.0f, %.0f, %.0f)\n",
			a.Label, a.Class, a.Location.X, a.Location.Y, a.Location.Z)
	}
	return nil
}
