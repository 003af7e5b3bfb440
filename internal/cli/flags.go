package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
)

// FeedFlags holds the feed flags shared by watch and snapshot.
type FeedFlags struct {
	Server      string
	Path        string
	Window      int
	ReloadDelay string
}

// AddFeedFlags registers --server, --path, --window and --reload-delay on a command.
func AddFeedFlags(cmd *cobra.Command, flags *FeedFlags) {
	cmd.Flags().StringVar(&flags.Server, "server", "", "metrics server page URL (e.g., http://localhost:3000)")
	cmd.Flags().StringVar(&flags.Path, "path", "", "feed endpoint path (default /realtime/cpus)")
	cmd.Flags().IntVar(&flags.Window, "window", 0, "chart points per core")
	cmd.Flags().StringVar(&flags.ReloadDelay, "reload-delay", "", "wait between a closed feed and the reload (e.g., 3s)")
}

// Apply copies every flag the user set onto cfg. Unset flags leave the
// config file value alone.
func (f FeedFlags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("server") {
		cfg.Server = f.Server
	}
	if changed("path") {
		cfg.Path = f.Path
	}
	if changed("window") {
		cfg.Window = f.Window
	}
	if changed("reload-delay") {
		d, err := ParseDuration("reload-delay", f.ReloadDelay)
		if err != nil {
			return err
		}
		cfg.ReloadDelay = d
	}
	return nil
}

// ParseDuration parses a duration flag value. Returns zero duration if the
// value is empty.
func ParseDuration(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid --%s", value, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("--%s can't be negative", name),
			"Use a positive duration like 5s.")
	}
	return d, nil
}

// loadConfig resolves the config file, applies flag overrides through
// apply, and validates the result.
func loadConfig(apply ...func(*config.Config) error) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	for _, fn := range apply {
		if err := fn(cfg); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
