package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
)

// settableKeys are the top-level scalars `config set` may change.
var settableKeys = map[string]bool{
	"server":       true,
	"path":         true,
	"reload_delay": true,
	"window":       true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the resolved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration corewatch would use, after defaults are merged
in, along with the file it came from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in the config file",
	Long: `Change a top-level setting in the nearest config file, keeping its
comments and layout.

Keys: server, path, reload_delay, window

Examples:
  corewatch config set server https://metrics.example.com
  corewatch config set window 120`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func configShow(w io.Writer) error {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}

	if path == "" {
		fmt.Fprintln(w, "# no config file found, showing defaults")
	} else {
		fmt.Fprintf(w, "# %s\n", path)
	}
	_, err = w.Write(data)
	return err
}

func configSet(w io.Writer, key, value string) error {
	if !settableKeys[key] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' can't be set from the command line", key),
			"Settable keys: server, path, reload_delay, window. Edit the file for the rest.")
	}

	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Create one with 'corewatch init'")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't update "+path, "")
	}

	// Surface an edit that left the file unusable.
	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, path)
	return nil
}
