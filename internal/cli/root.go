// Package cli implements the forgectl command tree. Every subcommand
// talks to one editor session configured by the persistent flags, whose
// defaults come from FORGE_* environment variables so CI jobs set the
// target once.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/ueagentforge/forge/sdk/go/forge"
)

// envDefaults sources flag defaults from the environment.
type envDefaults struct {
	Host    string        `env:"FORGE_HOST" envDefault:"127.0.0.1"`
	Port    int           `env:"FORGE_PORT" envDefault:"30010"`
	Timeout time.Duration `env:"FORGE_TIMEOUT" envDefault:"30s"`
	Verify  bool          `env:"FORGE_VERIFY" envDefault:"true"`
	History string        `env:"FORGE_HISTORY"`
}

var (
	flagHost     string
	flagPort     int
	flagTimeout  time.Duration
	flagNoVerify bool
	flagVerbose  bool
	flagHistory  string
)

var rootCmd = &cobra.Command{
	Use:   "forgectl",
	Short: "Drive the Unreal Editor's UEAgentForge plugin from the command line",
	Long: "Issues commands to a running editor through the Remote Control API.\n" +
		"Mutating commands are checked against the editor-side constitution\n" +
		"before they run; blocked commands exit with code 77.",
	SilenceUsage: true,
}

func init() {
	defaults := envDefaults{}
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "warning: bad FORGE_* environment: %v\n", err)
		defaults = envDefaults{Host: "127.0.0.1", Port: 30010, Timeout: 30 * time.Second, Verify: true}
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", defaults.Host, "Editor host")
	pf.IntVar(&flagPort, "port", defaults.Port, "Remote Control API port")
	pf.DurationVar(&flagTimeout, "timeout", defaults.Timeout, "Per-command timeout")
	pf.BoolVar(&flagNoVerify, "no-verify", !defaults.Verify, "Skip the constitution check on mutating commands")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request and reply")
	pf.StringVar(&flagHistory, "history", defaults.History, "Path to the SQLite command ledger (optional)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds a client from the persistent flags.
func newClient() (*forge.Client, error) {
	opts := []forge.Option{
		forge.WithHost(flagHost),
		forge.WithPort(flagPort),
		forge.WithTimeout(flagTimeout),
		forge.WithVerify(!flagNoVerify),
	}
	if flagVerbose {
		opts = append(opts, forge.WithVerbose())
	}
	if flagHistory != "" {
		opts = append(opts, forge.WithHistory(flagHistory))
	}
	return forge.New(opts...)
}

// exitOnBlocked translates a constitution denial into exit code 77 so
// scripts can tell "policy said no" from "something broke".
func exitOnBlocked(err error) {
	var denied *forge.PermissionError
	if errors.As(err, &denied) {
		fmt.Fprintf(os.Stderr, "BLOCKED: %s\n", denied.Action)
		for _, v := range denied.Violations {
			fmt.Fprintf(os.Stderr, "  - %s\n", v)
		}
		os.Exit(77)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
