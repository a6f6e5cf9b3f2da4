// multilaunch opens several applications from one query: a saved group name
// or application names joined by ';' or '+'.
//
// Usage:
//
//	multilaunch                         interactive search and group editor
//	multilaunch query <terms...>        classify and resolve a query
//	multilaunch apps [add|rm]           list or edit the application catalog
//	multilaunch groups <subcommand>     list, show, set, rm or rename groups
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

var rootFlags struct {
	configDir string
	debug     bool
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:           "multilaunch",
	Short:         "Launch several applications from one query",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "multilaunch %s (built %s)\n", version, buildTime)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configDir, "config-dir", "", "Config directory (default $MULTILAUNCH_CONFIG_DIR or ~/.config/multilaunch)")
	pf.BoolVarP(&rootFlags.debug, "debug", "d", false, "Enable debug logging")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(versionCmd, queryCmd, appsCmd, groupsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
