package cli

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/cpubars/internal/config"
	"github.com/rileyhilliard/cpubars/internal/dashboard"
	"github.com/rileyhilliard/cpubars/internal/errors"
	"github.com/rileyhilliard/cpubars/internal/logger"
	"github.com/rileyhilliard/cpubars/internal/mount"
	"github.com/rileyhilliard/cpubars/internal/reading"
	"github.com/rileyhilliard/cpubars/internal/refresh"
	"github.com/rileyhilliard/cpubars/internal/source"
	"github.com/rileyhilliard/cpubars/internal/view"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show live per-core CPU utilization",
	Long: `Start the refresh loop and keep the per-core view current.

In pull mode the backend is polled once per second; in push mode a
WebSocket stream delivers readings as they happen. A failed refresh is
logged and skipped: the last good view stays up.

Output formats:
  tui   interactive dashboard (falls back to text when stdout is not a terminal)
  text  one plain frame per update
  html  the list is mounted into an HTML page written on every update

Examples:
  cpubars watch
  cpubars watch --mode push --url http://box:3000
  cpubars watch --output html --out /var/www/cpus.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return Watch(cmd.Context(), cfg, WatchIO{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()})
	},
}

func init() {
	addSourceFlags(watchCmd)
	addViewFlags(watchCmd)
	watchCmd.Flags().String("push-url", "", "explicit push endpoint, overrides the one derived from --url")
	watchCmd.Flags().String("mode", "", "data source: pull (poll every second) or push (websocket)")
	watchCmd.Flags().String("output", "", "output format: tui, text or html")
	watchCmd.Flags().String("log-file", "", "append diagnostics to this file")
	rootCmd.AddCommand(watchCmd)
}

// WatchIO is where watch writes frames and diagnostics.
type WatchIO struct {
	Out io.Writer
	Err io.Writer
}

// Watch runs the refresh loop for cfg until ctx is done (or the user
// quits the dashboard).
func Watch(ctx context.Context, cfg *config.Config, stdio WatchIO) error {
	mode, err := refresh.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	style, err := view.ParseStyle(cfg.Style)
	if err != nil {
		return err
	}
	ep, err := cfg.ResolveEndpoints()
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if format == config.FormatTUI && !isTerminal(stdio.Out) {
		format = config.FormatText
	}

	log, closeLog, err := openLogger(cfg.Log.File, format, stdio.Err)
	if err != nil {
		return err
	}
	defer closeLog()

	// Loops started below report through the default logger.
	prev := logger.Default()
	logger.SetDefault(log)
	defer logger.SetDefault(prev)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = source.DefaultTimeout
	}
	rc := refresh.Config{
		Mode: mode,
		Pull: source.NewHTTPSource(ep.Pull, timeout),
		Push: source.NewWebSocketSource(ep.Push),
	}
	log.Info("watching %s in %s mode (%s output)", endpointFor(mode, ep), mode, format)

	switch format {
	case config.FormatTUI:
		return watchDashboard(ctx, rc, mode, style, stdio.Out)

	case config.FormatHTML:
		page, err := mount.LoadPage(cfg.Output.Page, cfg.Output.MountID)
		if err != nil {
			return err
		}
		out := &mount.Output{Page: page}
		if cfg.Output.Out == "" || cfg.Output.Out == "-" {
			out.W = stdio.Out
		} else {
			out.Path = cfg.Output.Out
		}
		rc.Sink = func(v reading.Vector) {
			if err := out.Mount(view.Build(v, style)); err != nil {
				log.Error("%s", errors.Summary(err))
			}
		}

	default:
		write := dashboard.TextWriter(stdio.Out)
		rc.Sink = func(v reading.Vector) {
			if err := write(dashboard.FrameMsg{Tree: view.Build(v, style), At: time.Now()}); err != nil {
				log.Error("write frame: %v", err)
			}
		}
	}

	var starter refresh.Starter
	if _, err := starter.Start(ctx, rc); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// watchDashboard runs the Bubble Tea dashboard with the refresh loop
// feeding it frames. Quitting the dashboard stops the loop.
func watchDashboard(ctx context.Context, rc refresh.Config, mode refresh.Mode, style view.Style, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(
		dashboard.NewModel(mode, style),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
	)
	rc.Sink = dashboard.Forward(p.Send, style, nil)

	var starter refresh.Starter
	if _, err := starter.Start(ctx, rc); err != nil {
		return err
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard stopped unexpectedly",
			"Try --output text, or set --log-file to see what happened")
	}
	return nil
}

func endpointFor(mode refresh.Mode, ep source.Endpoints) string {
	if mode == refresh.ModePush {
		return ep.Push
	}
	return ep.Pull
}

// openLogger picks the diagnostics destination. The dashboard owns the
// terminal, so without a log file tui mode logs nothing.
func openLogger(path, format string, stderr io.Writer) (logger.Logger, func(), error) {
	if path != "" {
		log, closer, err := logger.OpenFile(path, "[cpubars]")
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open log file "+path,
				"Check the directory exists and is writable")
		}
		return log, func() { closer.Close() }, nil
	}
	if format == config.FormatTUI {
		return logger.Noop(), func() {}, nil
	}
	return logger.NewWriterLogger(stderr, "[cpubars]"), func() {}, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
