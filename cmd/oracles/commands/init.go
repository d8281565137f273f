package commands

import (
	"path/filepath"

	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new oracles project",
	Long: `Initialize a new oracles project next to the configuration file.

Creates:
  • oracles.yml - Project configuration file
  • sources.yml - Source templates (deck54, tarot_major, d6, yesno)
  • oracles/    - Example oracle specs for each source

Use --force to reinitialize an existing project (WARNING: overwrites the example
files and the configuration; the saved workspace is kept).`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (removes existing oracles.yml, sources.yml and oracles/)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := filepath.Dir(configPath)

	// Check for existing files (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting(dir); err != nil {
			return printer.Error("project already initialized", err.Error(), nil)
		}
	}

	files, err := scaffold.Initialize(dir, forceInit)
	if err != nil {
		return printer.Error("initialization failed", err.Error(), nil)
	}

	printer.Success("Initialized oracles project in %s\n", dir)
	printer.Println("\nCreated:")
	for _, f := range files {
		printer.Printf("  ✓ %s\n", f.Path)
	}
	printer.Println("\nNext steps:")
	printer.Println("  1. List the available oracles:   oracles catalog")
	printer.Println("  2. Add one to the workspace:     oracles add Tarot")
	printer.Println("  3. Draw from it:                oracles pick Tarot -n 3")
	return nil
}
