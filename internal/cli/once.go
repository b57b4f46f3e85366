package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/cpubars/internal/config"
	"github.com/rileyhilliard/cpubars/internal/dashboard"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/mount"
	"github.com/rileyhilliard/cpubars/internal/reading"
	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/source"
	"github.com/rileyhilliard/cpubars/internal/view"
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Pull one reading, print it, and exit",
	Long: `Fetch a single reading from the pull endpoint and print the rendered
list. Exits non-zero if the backend is unreachable or returns something
that is not a reading.

Examples:
  cpubars once
  cpubars once --style plain
  cpubars once --output html --page index.html --out cpus.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return Once(cmd.Context(), cfg, cmd.OutOrStdout())
	},
}

func init() {
	addSourceFlags(onceCmd)
	addViewFlags(onceCmd)
	onceCmd.Flags().String("output", "", "output format: text or html")
	rootCmd.AddCommand(onceCmd)
}

// Once performs a single pull and writes the rendered view to out.
// Mode is ignored: one-shot reads always use the pull endpoint.
func Once(ctx context.Context, cfg *config.Config, out io.Writer) error {
	style, err := view.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	ep, err := cfg.ResolveEndpoints()
	if err != nil {
		return err
	}
	if ep.Pull == "" {
		return errors.New(errors.ErrConfig,
			"No pull endpoint configured",
			"Set 'url' or 'endpoints.pull' in .cpubars.yaml, or pass --url")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = source.DefaultTimeout
	}

	var tree view.Node
	_, err = refresh.Once(ctx, source.NewHTTPSource(ep.Pull, timeout), func(v reading.Vector) {
		tree = view.Build(v, style)
	})
	if err != nil {
		return withSuggestion(err, fmt.Sprintf("Check the backend is serving %s", ep.Pull))
	}

	if cfg.Output.Format == config.FormatHTML {
		page, err := mount.LoadPage(cfg.Output.Page, cfg.Output.MountID)
		if err != nil {
			return err
		}
		target := &mount.Output{Page: page, W: out}
		if cfg.Output.Out != "" && cfg.Output.Out != "-" {
			target = &mount.Output{Page: page, Path: cfg.Output.Out}
		}
		return target.Mount(tree)
	}

	_, err = io.WriteString(out, dashboard.Text(tree))
	return err
}

// withSuggestion fills in a suggestion on structured errors that lack one.
func withSuggestion(err error, suggestion string) error {
	if e, ok := err.(*errors.Error); ok && e.Suggestion == "" {
		copied := *e
		copied.Suggestion = suggestion
		return &copied
	}
	return err
}
