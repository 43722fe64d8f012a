package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/internal/script"
)

var runFormat string

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "text", "Output format (text|json)")
}

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a scripted command sequence in a single transaction",
	Long: "Loads a YAML script and executes its steps inside one editor\n" +
		"transaction. Any step failure rolls the whole transaction back.\n" +
		"The script can request verification afterwards and gate a level\n" +
		"save on the verification passing.\n\n" +
		"Exit code 0 if every step passed, 1 otherwise.",
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := signalContext()
	defer cancel()

	result, err := script.LoadAndRun(ctx, client, args[0])
	if err != nil {
		exitOnBlocked(err)
		return err
	}

	switch runFormat {
	case "json":
		out, err := script.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(script.FormatText(result))
	}

	if !result.OK() {
		os.Exit(1)
	}
	return nil
}
