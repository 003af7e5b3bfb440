package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/feed"
)

const (
	// MaxWindow caps the chart window so a typo can't allocate huge paths.
	MaxWindow = 10000
	// MaxDecimals is the most label precision that still fits a card.
	MaxDecimals = 6
)

// ValidOutputs lists the accepted display.output values.
var ValidOutputs = []string{OutputAuto, OutputTUI, OutputHTML, OutputJSON}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but corewatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest corewatch release.")
	}

	if _, err := feed.SubscriptionURL(cfg.Server, cfg.Path); err != nil {
		return err
	}

	if err := validateFeed(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the top-level settings in your .corewatch.yaml.")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your .corewatch.yaml.")
	}

	if err := validateMetrics(cfg.Metrics); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'metrics' section in your .corewatch.yaml.")
	}

	return nil
}

// validateFeed checks the subscription settings.
func validateFeed(cfg *Config) error {
	if cfg.ReloadDelay < 0 {
		return fmt.Errorf("reload_delay can't be negative - that doesn't make sense")
	}
	if cfg.ReloadDelay > 0 && cfg.ReloadDelay < 100*time.Millisecond {
		return fmt.Errorf("reload_delay %v is too short - the server would be hammered with reconnects", cfg.ReloadDelay)
	}
	if cfg.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", cfg.Window)
	}
	if cfg.Window > MaxWindow {
		return fmt.Errorf("window %d is larger than the maximum of %d", cfg.Window, MaxWindow)
	}
	return nil
}

// validateDisplay checks display configuration.
func validateDisplay(d DisplayConfig) error {
	if d.Output != "" && !isValidOutput(d.Output) {
		return fmt.Errorf("display.output '%s' isn't valid - use %s", d.Output, strings.Join(ValidOutputs, ", "))
	}
	if d.Decimals < 0 || d.Decimals > MaxDecimals {
		return fmt.Errorf("display.decimals must be between 0 and %d, got %d", MaxDecimals, d.Decimals)
	}
	if d.ChartWidth < 0 || d.ChartHeight < 0 {
		return fmt.Errorf("display chart size can't be negative (%dx%d)", d.ChartWidth, d.ChartHeight)
	}
	if d.Refresh < 0 {
		return fmt.Errorf("display.refresh can't be negative")
	}
	if d.Output == OutputHTML && d.HTMLFile == "" {
		return fmt.Errorf("display.html_file is required when display.output is 'html'")
	}
	return nil
}

// validateMetrics checks the Prometheus listen address.
func validateMetrics(m MetricsConfig) error {
	if m.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Addr); err != nil {
		return fmt.Errorf("metrics.addr '%s' doesn't look like host:port - try ':9105'", m.Addr)
	}
	return nil
}

func isValidOutput(s string) bool {
	for _, o := range ValidOutputs {
		if s == o {
			return true
		}
	}
	return false
}
