package commands

import (
	"fmt"

	"github.com/dyluth/oracles/internal/filter"
	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/render"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/spf13/cobra"
)

var (
	catalogName         string
	catalogSource       string
	catalogFinite       bool
	catalogOutputFormat string

	dumpOutputFormat string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the oracles available to add",
	Long: `List the oracles defined by spec files in the oracles directory.

Filters:
  --name    - Filter by oracle name (glob pattern, case-insensitive: "tarot*")
  --source  - Filter by source template (exact match: "deck54")
  --finite  - Only oracles whose values run out

Output Formats:
  default - Human-readable table
  jsonl   - Line-delimited JSON, one oracle per line`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var dumpCmd = &cobra.Command{
	Use:   "dump SOURCE",
	Short: "Print a spec skeleton for a source template",
	Long: `Print a spec document listing every identifier of a source template, ready
to be saved in the oracles directory and filled in.

Example:
  oracles dump deck54 > oracles/my-deck.yml`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogName, "name", "", "Filter by oracle name (glob pattern)")
	catalogCmd.Flags().StringVar(&catalogSource, "source", "", "Filter by source template")
	catalogCmd.Flags().BoolVar(&catalogFinite, "finite", false, "Only list finite oracles")
	catalogCmd.Flags().StringVarP(&catalogOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	dumpCmd.Flags().StringVarP(&dumpOutputFormat, "output", "o", "yaml", "Output format: yaml or json")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(dumpCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	format := render.OutputFormat(catalogOutputFormat)
	if format != render.OutputFormatDefault && format != render.OutputFormatJSONL {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", catalogOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	return view(func(s *session.Session, ws *workspace.Workspace) error {
		criteria := &filter.Criteria{NameGlob: catalogName, Source: catalogSource, FiniteOnly: catalogFinite}

		// numbers stay those of the full library so they can be passed to add
		position := make(map[*oracle.Oracle]int, len(s.Library))
		for i, o := range s.Library {
			position[o] = i + 1
		}
		entries := render.NewCatalogEntries(criteria.Apply(s.Library), func(o *oracle.Oracle) int { return position[o] })

		if err := render.ListCatalog(printer.Out(), entries, format); err != nil {
			return printer.Error("failed to list oracles", err.Error(), nil)
		}
		return nil
	})
}

func runDump(cmd *cobra.Command, args []string) error {
	format := render.OutputFormat(dumpOutputFormat)
	if format != render.OutputFormatYAML && format != render.OutputFormatJSON {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", dumpOutputFormat),
			[]string{"Valid formats: yaml, json"},
		)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, err := oracle.LoadCatalog(cfg.SourcesPath())
	if err != nil {
		return printer.Error("source catalog not found", err.Error(), []string{"Create one with:\n  oracles init"})
	}

	name := args[0]
	t, ok := catalog.Template(name)
	if !ok {
		return printer.Error(
			fmt.Sprintf("source '%s' not found", name),
			fmt.Sprintf("%s does not define '%s'.", cfg.SourcesPath(), name),
			[]string{fmt.Sprintf("Known sources: %v", catalog.Names())},
		)
	}

	spec, err := oracle.Skeleton(name, t)
	if err != nil {
		return printer.Error("failed to build skeleton", err.Error(), nil)
	}
	return render.FormatSpec(printer.Out(), spec, format)
}
