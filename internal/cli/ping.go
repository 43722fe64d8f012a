package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the editor plugin is alive",
	RunE:  runPing,
}

func runPing(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.Ping(ctx)
	if err != nil {
		return err
	}

	pong, _ := res.Str("pong")
	rules, _ := res.Int("constitution_rules")
	loaded, _ := res.Bool("constitution_loaded")
	fmt.Printf("%s (%s)\n", pong, client.URL())
	if loaded {
		fmt.Printf("constitution: %d rules loaded\n", rules)
	} else {
		fmt.Println("constitution: not loaded")
	}
	return nil
}
