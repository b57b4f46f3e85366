package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/cpubars/internal/config"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/source"
	"github.com/rileyhilliard/cpubars/internal/ui"
	"github.com/rileyhilliard/cpubars/internal/view"
)

// probeTimeout bounds the reachability check in init.
const probeTimeout = 5 * time.Second

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .cpubars.yaml configuration",
	Long: `Create a .cpubars.yaml file in the current directory.

Prompts for the backend URL, refresh mode and style, then checks that
the backend answers on its pull endpoint before saving.

Examples:
  cpubars init
  cpubars init --url http://box:3000 --mode push --non-interactive
  cpubars init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Out = cmd.OutOrStdout()
		return Init(cmd.Context(), opts)
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.URL, "url", "", "backend base URL")
	initCmd.Flags().StringVar(&initOpts.Mode, "mode", "", "pull or push")
	initCmd.Flags().StringVar(&initOpts.Style, "style", "", "plain or decorated")
	initCmd.Flags().StringVar(&initOpts.Path, "path", "", "where to write the file (default ./"+config.ConfigFileName+")")
	initCmd.Flags().BoolVar(&initOpts.Overwrite, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use flags/defaults")
	initCmd.Flags().BoolVar(&initOpts.SkipProbe, "skip-probe", false, "don't check the backend before saving")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string
	URL            string
	Mode           string
	Style          string
	Overwrite      bool
	NonInteractive bool
	SkipProbe      bool
	Out            io.Writer
}

// initDefaults fills unset options from the environment, then built-in
// defaults. CI=true implies non-interactive.
func initDefaults(opts InitOptions) InitOptions {
	if opts.Path == "" {
		opts.Path = filepath.Join(".", config.ConfigFileName)
	}
	if opts.URL == "" {
		opts.URL = os.Getenv(config.EnvPrefix + "_URL")
	}
	if opts.URL == "" {
		opts.URL = config.DefaultURL
	}
	if opts.Mode == "" {
		opts.Mode = config.DefaultMode
	}
	if opts.Style == "" {
		opts.Style = config.DefaultStyle
	}
	if os.Getenv("CI") == "true" {
		opts.NonInteractive = true
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return opts
}

// Init creates a new .cpubars.yaml configuration file.
func Init(ctx context.Context, opts InitOptions) error {
	opts = initDefaults(opts)
	out := opts.Out

	if _, err := os.Stat(opts.Path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", opts.Path)).
				Value(&overwrite),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if !opts.NonInteractive {
		if err := promptInit(&opts); err != nil {
			return err
		}
	}

	cfg := config.DefaultConfig()
	cfg.URL = strings.TrimSpace(opts.URL)
	cfg.Mode = strings.ToLower(opts.Mode)
	cfg.Style = strings.ToLower(opts.Style)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if opts.SkipProbe {
		ui.Info(out, "Skipping backend check")
	} else if err := probeBackend(ctx, cfg, opts); err != nil {
		return err
	}

	if err := config.Write(opts.Path, cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", opts.Path),
			"Check directory permissions")
	}

	ui.Success(out, "Created %s", opts.Path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  cpubars watch  - Live per-core view")
	fmt.Fprintln(out, "  cpubars once   - Print one reading")

	return nil
}

// promptInit asks for URL, mode and style with huh.
func promptInit(opts *InitOptions) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Backend URL").
				Description("Where the CPU readings are served (pull: /api/cpus, push: /api/realtime_cpus)").
				Placeholder(config.DefaultURL).
				Value(&opts.URL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("URL is required")
					}
					if _, err := source.Resolve(s); err != nil {
						return fmt.Errorf("not a usable URL: %s", s)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Refresh mode").
				Options(
					huh.NewOption("pull - poll every second over HTTP", refresh.ModePull.String()),
					huh.NewOption("push - live stream over WebSocket", refresh.ModePush.String()),
				).
				Value(&opts.Mode),
			huh.NewSelect[string]().
				Title("Style").
				Options(
					huh.NewOption("decorated - progress bar per core", view.StyleDecorated.String()),
					huh.NewOption("plain - value per core", view.StylePlain.String()),
				).
				Value(&opts.Style),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

// probeBackend pulls one reading to confirm the backend is reachable.
// Interactive runs may save anyway after a failure.
func probeBackend(ctx context.Context, cfg *config.Config, opts InitOptions) error {
	ep, err := cfg.ResolveEndpoints()
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner(opts.Out, "Checking "+ep.Pull)
	spinner.Start()

	v, err := source.NewHTTPSource(ep.Pull, probeTimeout).Pull(ctx)
	if err == nil {
		spinner.Success(fmt.Sprintf("(%s)", pluralize(v.Cores(), "core")))
		return nil
	}
	spinner.Fail("")

	probeErr := withSuggestion(err, "Start the backend, fix the URL, or pass --skip-probe")
	if opts.NonInteractive {
		return probeErr
	}

	ui.Warn(opts.Out, "%s", errors.Summary(err))

	var saveAnyway bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Save config anyway? (You can start the backend later)").
			Value(&saveAnyway),
	))
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return probeErr
	}
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
