package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var execArgsJSON string

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringVar(&execArgsJSON, "args", "", "Command arguments as a JSON object")
}

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Execute any plugin command by name",
	Long: "Escape hatch for commands without a dedicated subcommand.\n" +
		"Prints the decoded reply payload as JSON.\n" +
		"Exit code 1 when the plugin reports the command failed.",
	Args: cobra.ExactArgs(1),
	RunE: runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	var cmdArgs map[string]any
	if execArgsJSON != "" {
		if err := json.Unmarshal([]byte(execArgsJSON), &cmdArgs); err != nil {
			return fmt.Errorf("--args is not a JSON object: %w", err)
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.Execute(ctx, args[0], cmdArgs)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res.Payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	if !res.OK {
		os.Exit(1)
	}
	return nil
}
