package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
)

// Command-specific flags
var (
	watchFlags    WatchFlags
	snapshotFlags SnapshotFlags
	initFlags     InitOptions
)

// watchCmd subscribes to the feed and renders every frame
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the CPU feed and render every frame",
	Long: `Subscribe to the server's realtime CPU feed and render each frame.

Output modes:
  tui   full-screen dashboard, one card per core
  html  a self-refreshing HTML page rewritten on every frame
  json  each frame as indented JSON on stdout
  auto  tui on a terminal, json otherwise (default)

When the connection closes, corewatch waits --reload-delay and starts a
fresh session from a clean slate.

Examples:
  corewatch watch
  corewatch watch --server https://metrics.example.com
  corewatch watch --output html --html-file /tmp/cpus.html
  corewatch watch --output json | jq '.[0].usage'
  corewatch watch --metrics-addr :9105`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(cmd, watchFlags)
	},
}

// snapshotCmd renders a single frame to an HTML file
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save the next frame as an HTML page",
	Long: `Wait for the next valid frame from the feed and write it as a standalone
HTML page, then exit.

Examples:
  corewatch snapshot
  corewatch snapshot --out cpus.html
  corewatch snapshot --out - > cpus.html
  corewatch snapshot --server http://box:3000 --timeout 30s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(cmd, snapshotFlags)
	},
}

// initCmd creates a new .corewatch.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .corewatch.yaml configuration",
	Long: `Initialize a new corewatch configuration file.

Creates a .corewatch.yaml file in the current directory (or the global
config with --global) and checks that the feed answers before saving.

Examples:
  corewatch init
  corewatch init --server http://localhost:3000 --non-interactive
  corewatch init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initFlags)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a shell completion script for corewatch.

Examples:
  corewatch completion bash > /etc/bash_completion.d/corewatch
  corewatch completion zsh > "${fpath[1]}/_corewatch"
  corewatch completion fish > ~/.config/fish/completions/corewatch.fish`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown shell '%s'", args[0]),
			"Pick one of bash, zsh, fish or powershell.")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd, snapshotCmd, initCmd, completionCmd)

	AddFeedFlags(watchCmd, &watchFlags.Feed)
	watchCmd.Flags().StringVarP(&watchFlags.Output, "output", "o", "", "output mode: auto, tui, html or json")
	watchCmd.Flags().StringVar(&watchFlags.HTMLFile, "html-file", "", "file the html output rewrites")
	watchCmd.Flags().StringVar(&watchFlags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g., :9105)")
	watchCmd.Flags().StringVar(&watchFlags.LogFile, "log-file", "", "write logs here while the dashboard runs")

	AddFeedFlags(snapshotCmd, &snapshotFlags.Feed)
	snapshotCmd.Flags().StringVar(&snapshotFlags.Out, "out", "", "output file, or - for stdout (default: display.html_file)")
	snapshotCmd.Flags().StringVar(&snapshotFlags.Timeout, "timeout", "", "how long to wait for a frame (default 10s)")

	initCmd.Flags().StringVar(&initFlags.Server, "server", "", "metrics server page URL")
	initCmd.Flags().StringVar(&initFlags.Output, "output", "", "default output mode for watch")
	initCmd.Flags().BoolVar(&initFlags.Global, "global", false, "write the global config in ~/"+filepath.Join(config.GlobalConfigDir, config.GlobalConfigFile))
	initCmd.Flags().BoolVar(&initFlags.Overwrite, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initFlags.NonInteractive, "non-interactive", false, "skip prompts and use defaults")
	initCmd.Flags().BoolVar(&initFlags.SkipCheck, "skip-check", false, "save without waiting for a frame from the server")

	_ = watchCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "tui", "html", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
}
