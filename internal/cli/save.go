package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

var saveVerified bool

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().BoolVar(&saveVerified, "verified", false, "Run full verification first and refuse to save on failure")
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the currently open level to disk",
	Long: "Saving is irreversible. With --verified the full verification\n" +
		"protocol runs first and a failing phase aborts the save.",
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	if saveVerified {
		report, err := client.RunVerification(ctx, forge.PhaseAll)
		if err != nil {
			return err
		}
		if !report.AllPassed {
			fmt.Print(report.Summary())
			fmt.Fprintln(os.Stderr, "verification failed; level not saved")
			os.Exit(1)
		}
	}

	res, err := client.SaveCurrentLevel(ctx)
	if err != nil {
		exitOnBlocked(err)
		return err
	}
	if !res.OK {
		return fmt.Errorf("save failed: %s", res.Err)
	}
	fmt.Println("level saved")
	return nil
}
