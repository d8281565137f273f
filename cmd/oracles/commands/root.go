package commands

import (
	"fmt"

	"github.com/dyluth/oracles/internal/config"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oracles",
	Short: "Oracles - draw from card decks, tarot and dice",
	Long: `Oracles draws values from randomizers such as card decks, tarot and dice,
and keeps what was drawn in named records.

Oracles are described by spec files in the oracles/ directory and built from
the source templates in sources.yml. The workspace (oracles, records and
drawn values) is saved after every command.

Start with:
  oracles init
  oracles catalog
  oracles add Tarot
  oracles pick Tarot`,
	Version: version,
	// Prevent silent success when unknown flags are passed to root command
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "Path to the oracles.yml configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log loading and saving details to stderr")
}
