package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

var verifyPhases int

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().IntVar(&verifyPhases, "phases", int(forge.PhaseAll),
		"Phase bitmask: 1=PreFlight 2=Snapshot+Rollback 4=PostVerify 8=BuildCheck")
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the editor's phased verification protocol",
	Long: "Requests the given verification phases and prints the per-phase\n" +
		"outcome. The editor decides which phases actually run.\n\n" +
		"Exit code 0 when every phase passed, 1 otherwise.\n" +
		"Use in CI to gate level changes on verification.",
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	report, err := client.RunVerification(ctx, forge.PhaseMask(verifyPhases))
	if err != nil {
		return err
	}

	fmt.Print(report.Summary())
	if !report.AllPassed {
		os.Exit(1)
	}
	return nil
}
