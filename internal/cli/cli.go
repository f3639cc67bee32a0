// Package cli implements the eiascout command-line interface.
//
// This package provides commands for exploring the EIA Open Data API
// route tree, mapping whole subtrees to CSV inventories, downloading
// dataset rows, and rendering maps and graphs from the results. The CLI
// is built using cobra and logs via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - routes: Describe one node of the route tree
//   - map: Walk a subtree and inventory every dataset route
//   - get: Download dataset rows as CSV
//   - browse: Navigate the route tree interactively
//   - geomap: Plot facility rows on a Leaflet map
//   - cache: Manage the response cache
//   - serve: Serve exported artifacts over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. API
// traffic is logged at debug level so normal runs stay quiet.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openeia/eiascout/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "eiascout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "eiascout",
		Short:        "Eiascout explores the EIA Open Data API",
		Long:         `Eiascout is a CLI tool for the U.S. Energy Information Administration's Open Data API: discover dataset routes, map whole subtrees, and download series data as CSV.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.mapCommand())
	root.AddCommand(c.getCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.geomapCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
