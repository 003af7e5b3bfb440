// Package cli implements the corewatch command-line interface.
//
// Each Cobra command parses its flags, resolves configuration and hands off
// to the feed, render and monitor packages for the actual work.
//
// # Command Structure
//
//	corewatch watch        - Follow the feed (tui, html or json output)
//	corewatch snapshot     - Write the next frame as an HTML page and exit
//	corewatch init         - Create .corewatch.yaml
//	corewatch config show  - Print the effective configuration
//	corewatch config set   - Change one setting in the config file
//	corewatch version      - Print build information
//	corewatch completion   - Generate shell completion scripts
//
// # Watch Pipeline
//
// watch runs three pieces under one errgroup with a shared context:
//
//  1. The feed client session loop (dial, read, close, delay, reload)
//  2. The optional Prometheus endpoint
//  3. The terminal dashboard, when the output is tui
//
// Frames go from the client's handler straight to a surface. The html and
// json surfaces write synchronously; the dashboard surface publishes into a
// latest-wins monitor.Source so a slow terminal never stalls the feed. Every
// reload resets the surface.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) live on the root command.
// Feed flags (--server, --path, --window, --reload-delay) are shared by
// watch and snapshot through AddFeedFlags. A flag only overrides the config
// file when the user actually set it.
package cli
