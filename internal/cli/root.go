package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/logger"
)

// Global flags
var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "cpubars",
	Short: "Live per-core CPU utilization from a cpubars backend",
	Long: `cpubars shows one bar per logical core, refreshed from a backend that
serves CPU readings over HTTP (/api/cpus) or a WebSocket (/api/realtime_cpus).

Running cpubars without a subcommand is the same as 'cpubars watch'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./.cpubars.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd.SetArgs(defaultToWatch(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// defaultToWatch makes watch the implicit subcommand when no subcommand
// is named.
func defaultToWatch(args []string) []string {
	for _, a := range args {
		switch a {
		case "-h", "--help", "help", "completion":
			return args
		}
		for _, c := range rootCmd.Commands() {
			if a == c.Name() || c.HasAlias(a) {
				return args
			}
		}
	}
	return append([]string{watchCmd.Name()}, args...)
}

// formatError renders structured errors in their multi-line form and
// anything else (cobra usage errors) on one line.
func formatError(err error) string {
	var cbErr *errors.Error
	if stderrors.As(err, &cbErr) {
		return cbErr.Error()
	}
	return fmt.Sprintf("✗ %s\n", err)
}
