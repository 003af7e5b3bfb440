package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Output modes for the watch command.
const (
	OutputAuto = "auto"
	OutputTUI  = "tui"
	OutputHTML = "html"
	OutputJSON = "json"
)

// Config represents the complete .corewatch.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Server is the page location the feed is derived from, e.g. http://localhost:3000.
	Server string `yaml:"server" mapstructure:"server"`

	// Path is the feed endpoint on the server.
	Path string `yaml:"path" mapstructure:"path"`

	// ReloadDelay is the wait between a closed connection and the reload.
	ReloadDelay time.Duration `yaml:"reload_delay" mapstructure:"reload_delay"`

	// Window is the number of chart points per core.
	Window int `yaml:"window" mapstructure:"window"`

	Display DisplayConfig `yaml:"display" mapstructure:"display"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// DisplayConfig controls how frames are presented.
type DisplayConfig struct {
	// Output is one of "auto", "tui", "html" or "json".
	// "auto" picks tui on a terminal and json otherwise.
	Output string `yaml:"output" mapstructure:"output"`

	// Decimals is the precision of the usage label.
	Decimals int `yaml:"decimals" mapstructure:"decimals"`

	ChartWidth     int  `yaml:"chart_width" mapstructure:"chart_width"`
	ChartHeight    int  `yaml:"chart_height" mapstructure:"chart_height"`
	ReferenceLines bool `yaml:"reference_lines" mapstructure:"reference_lines"`

	// HTMLFile is where the html output mode writes its document.
	// Supports ~ and ${HOME}, ${USER}.
	HTMLFile string `yaml:"html_file" mapstructure:"html_file"`

	// Refresh is the browser refresh interval embedded in the HTML document.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables it.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     CurrentConfigVersion,
		Server:      "http://localhost:3000",
		Path:        "/realtime/cpus",
		ReloadDelay: 3 * time.Second,
		Window:      50,
		Display: DisplayConfig{
			Output:         OutputAuto,
			Decimals:       1,
			ChartWidth:     300,
			ChartHeight:    100,
			ReferenceLines: true,
			HTMLFile:       "corewatch.html",
			Refresh:        time.Second,
		},
	}
}
