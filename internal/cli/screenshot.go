package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(screenshotCmd)
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <filename>",
	Short: "Capture the active viewport to a file on the editor host",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshot,
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	res, err := client.TakeScreenshot(ctx, args[0])
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("screenshot failed: %s", res.Err)
	}
	path, _ := res.Str("path")
	fmt.Println(path)
	return nil
}
