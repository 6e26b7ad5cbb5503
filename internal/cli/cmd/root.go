// Package cmd provides Cobra CLI commands for ledge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "ledge",
		Short: "A layout daemon for Wayland shell panels",
		Long: `Ledge - a layout daemon for Wayland shell panels and docks.

Ledge computes panel geometry so the compositor does not have to: applet
window placement across left/center/right regions, size-class constrained
resize negotiation, timed autohide with eased slide transitions, and
per-panel input regions.

Use 'ledge run' to start the daemon, or explore the config subcommands to
inspect, initialize, and validate the configuration.`,
	}
)

// Execute runs the root command with the build version from main.
func Execute(v string) {
	if v != "" {
		version = v
	}
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
