package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/logger"
	"github.com/rileyhilliard/corewatch/internal/metrics"
	"github.com/rileyhilliard/corewatch/internal/monitor"
	"github.com/rileyhilliard/corewatch/internal/render"
)

// WatchFlags holds the flags for the watch command.
type WatchFlags struct {
	Feed        FeedFlags
	Output      string
	HTMLFile    string
	MetricsAddr string
	LogFile     string
}

// applyDisplay copies the display flags the user set onto cfg.
func (f WatchFlags) applyDisplay(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Display.Output = f.Output
	}
	if changed("html-file") {
		cfg.Display.HTMLFile = config.Expand(f.HTMLFile)
	}
	if changed("metrics-addr") {
		cfg.Metrics.Addr = f.MetricsAddr
	}
}

// watchCommand subscribes to the feed and renders until interrupted.
func watchCommand(cmd *cobra.Command, flags WatchFlags) error {
	cfg, err := loadConfig(
		func(c *config.Config) error { return flags.Feed.Apply(cmd, c) },
		func(c *config.Config) error {
			flags.applyDisplay(cmd, c)
			return nil
		},
	)
	if err != nil {
		return err
	}

	output, err := resolveOutput(cfg.Display.Output, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if output == config.OutputTUI {
		restore, err := redirectLogs(flags.LogFile)
		if err != nil {
			return err
		}
		defer restore()
	}

	return runWatch(ctx, cfg, output, cmd.OutOrStdout())
}

// resolveOutput turns the configured output mode into a concrete surface.
// auto picks the dashboard on a terminal and JSON otherwise.
func resolveOutput(mode string, tty bool) (string, error) {
	switch mode {
	case config.OutputAuto, "":
		if tty {
			return config.OutputTUI, nil
		}
		return config.OutputJSON, nil
	case config.OutputTUI:
		if !tty {
			return "", errors.New(errors.ErrConfig,
				"The dashboard needs a terminal but stdout isn't one",
				"Use --output json or --output html when piping or redirecting.")
		}
		return mode, nil
	default:
		return mode, nil
	}
}

// redirectLogs keeps log output off the dashboard: to path when given,
// otherwise discarded. The returned func restores stderr.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(config.Expand(path), "corewatch")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file "+path,
			"Check that the directory exists and is writable")
	}
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// runWatch runs the feed client, the optional metrics endpoint and the
// chosen surface until ctx is done or the dashboard quits.
func runWatch(ctx context.Context, cfg *config.Config, output string, stdout io.Writer) error {
	url, err := feed.SubscriptionURL(cfg.Server, cfg.Path)
	if err != nil {
		return err
	}

	log := logger.Default()
	recorder := metrics.NewRecorder()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		out surface
		src *monitor.Source
	)
	switch output {
	case config.OutputTUI:
		src = monitor.NewSource()
		out = &tuiSurface{src: src}
	case config.OutputHTML:
		doc := render.NewDocument(cfg.Display.HTMLFile, renderOptions(cfg), cfg.Display.Refresh)
		if err := doc.Reset(); err != nil {
			return err
		}
		log.Info("writing %s", doc.Path())
		out = doc
	default:
		out = newJSONSurface(stdout)
	}

	opts := []feed.Option{
		feed.WithLogger(log),
		feed.WithStats(recorder),
		feed.WithReloadDelay(cfg.ReloadDelay),
		feed.WithReloadHook(func() {
			if err := out.Reset(); err != nil {
				log.Error("reset after reload: %s", oneLine(err))
			}
		}),
	}
	if src != nil {
		opts = append(opts, feed.WithStateHook(src.PublishState))
	}
	client := feed.NewClient(url, frameHandler(out, recorder, log), opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Run(gctx)
	})
	if cfg.Metrics.Addr != "" {
		g.Go(func() error {
			log.Info("serving metrics on %s/metrics", cfg.Metrics.Addr)
			return recorder.Serve(gctx, cfg.Metrics.Addr)
		})
	}
	if src != nil {
		g.Go(func() error {
			// Quitting the dashboard ends the whole watch.
			defer cancel()
			return runDashboard(gctx, src, cfg, client)
		})
	}
	return g.Wait()
}

// frameHandler applies each frame to out. Surface errors are logged and the
// session carries on with the next frame.
func frameHandler(out surface, recorder *metrics.Recorder, log logger.Logger) feed.Handler {
	return func(f frame.Frame) {
		recorder.ObserveCores(f.Cores())
		if err := out.Apply(f); err != nil {
			log.Error("apply frame: %s", oneLine(err))
		}
	}
}

func runDashboard(ctx context.Context, src *monitor.Source, cfg *config.Config, client *feed.Client) error {
	model := monitor.NewModel(src, monitor.Options{
		Window:   cfg.Window,
		Decimals: cfg.Display.Decimals,
		Reload:   client.Reload,
		Server:   cfg.Server,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.WrapWithCode(err, errors.ErrOutput,
			"Dashboard stopped unexpectedly",
			"Try --output json to stream frames instead")
	}
	return nil
}

// oneLine flattens a structured error for a single log line.
func oneLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
