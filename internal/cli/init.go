package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/corewatch/internal/config"
	"github.com/rileyhilliard/corewatch/internal/errors"
	"github.com/rileyhilliard/corewatch/internal/feed"
	"github.com/rileyhilliard/corewatch/internal/ui"
)

// initCheckTimeout bounds the feed check before saving.
const initCheckTimeout = 5 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	Server         string // Pre-specified server page URL
	Output         string // Pre-specified output mode
	Global         bool   // Write ~/.config/corewatch/config.yaml instead of ./.corewatch.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	SkipCheck      bool   // Don't wait for a frame before saving
}

// getInitDefaults reads init defaults from the environment.
// CI or COREWATCH_NON_INTERACTIVE switch off the prompts.
func getInitDefaults() InitOptions {
	nonInteractive := os.Getenv("COREWATCH_NON_INTERACTIVE") != "" || os.Getenv("CI") != ""
	return InitOptions{
		Server:         os.Getenv("COREWATCH_SERVER"),
		Output:         os.Getenv("COREWATCH_OUTPUT"),
		NonInteractive: nonInteractive,
	}
}

// mergeInitOptions fills unset options from the environment. Flags win.
func mergeInitOptions(opts InitOptions) InitOptions {
	env := getInitDefaults()
	if opts.Server == "" {
		opts.Server = env.Server
	}
	if opts.Output == "" {
		opts.Output = env.Output
	}
	opts.NonInteractive = opts.NonInteractive || env.NonInteractive
	return opts
}

// initConfigPath returns where init writes.
func initConfigPath(global bool) (string, error) {
	if !global {
		return filepath.Join(".", config.ConfigFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Can't find your home directory",
			"Set $HOME or drop --global")
	}
	return filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile), nil
}

// Init creates a new corewatch configuration file.
func Init(opts InitOptions) error {
	opts = mergeInitOptions(opts)

	configPath, err := initConfigPath(opts.Global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Server != "" {
		cfg.Server = opts.Server
	}
	if opts.Output != "" {
		cfg.Display.Output = opts.Output
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if !opts.SkipCheck {
		if err := checkFeed(cfg, opts.NonInteractive); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg, true); err != nil {
		return err
	}

	fmt.Println()
	ui.PrintSuccess("Created %s", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  corewatch watch      - Follow the feed live")
	fmt.Println("  corewatch snapshot   - Save one frame as an HTML page")
	return nil
}

// promptConfig asks for the settings most people change.
func promptConfig(cfg *config.Config) error {
	window := strconv.Itoa(cfg.Window)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Metrics server").
				Description("Page URL of the server; the feed is derived from it").
				Placeholder("http://localhost:3000").
				Value(&cfg.Server).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("server is required")
					}
					if _, err := feed.SubscriptionURL(s, cfg.Path); err != nil {
						return fmt.Errorf("use an http, https, ws or wss URL with a host")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output").
				Description("Where watch shows frames").
				Options(
					huh.NewOption("Auto (dashboard on a terminal, JSON otherwise)", config.OutputAuto),
					huh.NewOption("Terminal dashboard", config.OutputTUI),
					huh.NewOption("HTML page", config.OutputHTML),
					huh.NewOption("JSON stream", config.OutputJSON),
				).
				Value(&cfg.Display.Output),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Chart window").
				Description("Points per core chart").
				Value(&window).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 || n > config.MaxWindow {
						return fmt.Errorf("enter a number between 1 and %d", config.MaxWindow)
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	cfg.Server = strings.TrimSpace(cfg.Server)
	cfg.Window, _ = strconv.Atoi(strings.TrimSpace(window))
	return nil
}

// checkFeed waits for one frame from the configured server. Interactive
// users may save anyway when it fails.
func checkFeed(cfg *config.Config, nonInteractive bool) error {
	url, err := feed.SubscriptionURL(cfg.Server, cfg.Path)
	if err != nil {
		return err
	}

	fmt.Println()
	spinner := ui.NewSpinner("Checking feed at " + url)
	spinner.Start()

	_, err = firstFrame(context.Background(), url, initCheckTimeout)
	if err == nil {
		spinner.Success()
		return nil
	}
	spinner.Fail()

	if nonInteractive {
		return err
	}

	fmt.Printf("\n%s No frame from '%s'\n\n", ui.SymbolFail, url)
	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can start the server later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return err
	}
	return nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(opts InitOptions) error {
	return Init(opts)
}
