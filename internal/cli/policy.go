package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(policyCmd)
}

var policyCmd = &cobra.Command{
	Use:   "policy <action description>",
	Short: "Ask the constitution whether an action would be permitted",
	Long: "Dry-run check: nothing executes. The editor evaluates the described\n" +
		"action against its constitution and reports the verdict.\n" +
		"Exit code 77 when the action would be blocked.",
	Args: cobra.MinimumNArgs(1),
	RunE: runPolicy,
}

func runPolicy(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	decision, err := client.EnforceConstitution(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if decision.Allowed {
		fmt.Println("allowed")
		return nil
	}
	fmt.Println("blocked")
	for _, v := range decision.Violations {
		fmt.Printf("  - %s\n", v)
	}
	os.Exit(77)
	return nil
}
