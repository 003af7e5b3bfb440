package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/logger"
	"github.com/rileyhilliard/corewatch/internal/ui"
)

// Global flags
var (
	cfgFile     string
	verboseFlag bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "corewatch",
	Short: "Live per-core CPU usage from a realtime metrics feed",
	Long: `corewatch subscribes to a metrics server's realtime CPU feed over
WebSocket and renders every frame as one block per core: usage label,
band colour, fill bar and a rolling history chart.

Frames can be shown as a terminal dashboard, written to a self-refreshing
HTML page, or streamed as JSON.

Examples:
  corewatch watch
  corewatch watch --server https://metrics.example.com --output html
  corewatch snapshot --out cpus.html`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
		logger.SetDefault(logger.NewEnvLogger("[" + cmd.Name() + "]"))
		if noColorFlag || os.Getenv("NO_COLOR") != "" {
			ui.DisableColors()
		}
	},
}

func init() {
	// cobra only applies its default distance inside its own lookup, and
	// reportError asks for suggestions directly.
	rootCmd.SuggestionsMinimumDistance = 2
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nearest .corewatch.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits with a non-zero status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err for the user and returns the process exit code.
func reportError(w io.Writer, err error) int {
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	if isUnknownCommandError(err) {
		// cobra appends its own suggestion block after the first line.
		first := strings.SplitN(err.Error(), "\n", 2)[0]
		fmt.Fprintf(w, "%s %s\n", ui.SymbolFail, first)
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(w, "\n  Did you mean: %s\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(w, "\n  Run 'corewatch --help' to see available commands.")
		return 1
	}

	var cwErr *errors.Error
	if stderrors.As(err, &cwErr) {
		fmt.Fprint(w, cwErr.Error())
		return 1
	}
	fmt.Fprintf(w, "%s %s\n", ui.SymbolFail, err)
	return 1
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "corewatch"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
