package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/frame"
	"github.com/rileyhilliard/corewatch/internal/logger"
	"github.com/rileyhilliard/corewatch/internal/render"
	"github.com/rileyhilliard/corewatch/internal/ui"
)

// DefaultSnapshotTimeout bounds the wait for the first frame.
const DefaultSnapshotTimeout = 10 * time.Second

// SnapshotFlags holds the flags for the snapshot command.
type SnapshotFlags struct {
	Feed    FeedFlags
	Out     string
	Timeout string
}

func snapshotCommand(cmd *cobra.Command, flags SnapshotFlags) error {
	cfg, err := loadConfig(func(c *config.Config) error { return flags.Feed.Apply(cmd, c) })
	if err != nil {
		return err
	}

	timeout, err := ParseDuration("timeout", flags.Timeout)
	if err != nil {
		return err
	}
	if timeout == 0 {
		timeout = DefaultSnapshotTimeout
	}

	out := flags.Out
	if out == "" {
		out = cfg.Display.HTMLFile
	}
	return runSnapshot(cmd.Context(), cfg, config.Expand(out), timeout, cmd.OutOrStdout())
}

// runSnapshot waits for one valid frame and writes it as a standalone page,
// to stdout when out is "-".
func runSnapshot(ctx context.Context, cfg *config.Config, out string, timeout time.Duration, stdout io.Writer) error {
	url, err := feed.SubscriptionURL(cfg.Server, cfg.Path)
	if err != nil {
		return err
	}

	spinner := ui.NewSpinner("Waiting for a frame from " + url)
	spinner.Start()
	f, err := firstFrame(ctx, url, timeout, feed.WithLogger(logger.Default()))
	if err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()

	doc := render.NewDocument(out, renderOptions(cfg), 0)
	if out == "-" {
		return doc.Write(stdout, f)
	}
	if err := doc.Apply(f); err != nil {
		return err
	}
	ui.PrintSuccess("Wrote %s (%d cores, avg %.1f%%)", out, f.Cores(), f.Average())
	return nil
}

// firstFrame subscribes to url and returns the first frame that decodes.
// Malformed messages are skipped like in a normal session.
func firstFrame(ctx context.Context, url string, timeout time.Duration, opts ...feed.Option) (frame.Frame, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	frames := make(chan frame.Frame, 1)
	client := feed.NewClient(url, func(f frame.Frame) {
		select {
		case frames <- f:
		default:
		}
	}, opts...)
	client.Start(waitCtx)
	defer client.Stop()

	select {
	case f := <-frames:
		return f, nil
	case <-waitCtx.Done():
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "Interrupted while waiting for a frame from "+url)
		}
		return nil, errors.New(errors.ErrFeed,
			fmt.Sprintf("No frame from %s within %s", url, timeout),
			"Check that the metrics server is running and streaming CPU frames, or raise --timeout.")
	}
}
