package commands

import (
	"context"
	"fmt"

	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/render"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/spf13/cobra"
)

var (
	showOutputFormat string
)

var showCmd = &cobra.Command{
	Use:   "show [RECORD]",
	Short: "Show the workspace or one record",
	Long: `Show the workspace's oracles and records, followed by the values of the
selected record. With RECORD, show only that record.

Output Formats:
  default - Human-readable tables
  jsonl   - Line-delimited JSON, one drawn value per line (every record unless RECORD is given)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var renameCmd = &cobra.Command{
	Use:   "rename NAME",
	Short: "Rename the workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runRename,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every oracle and record from the workspace",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read the spec files used by the workspace",
	Long: `Re-read every spec file referenced by the workspace so that edits to names,
meanings, states and ban lists take effect. Drawn values keep their identifiers
and are re-resolved against the new specs.`,
	Args: cobra.NoArgs,
	RunE: runReload,
}

func init() {
	showCmd.Flags().StringVarP(&showOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(reloadCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	format := render.OutputFormat(showOutputFormat)
	if format != render.OutputFormatDefault && format != render.OutputFormatJSONL {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", showOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	return view(func(s *session.Session, ws *workspace.Workspace) error {
		records := ws.Records()
		if len(args) == 1 {
			r, err := workspaceRecord(ws, args[0])
			if err != nil {
				return err
			}
			records = []*workspace.Record{r}
		}

		if format == render.OutputFormatJSONL {
			var views []render.ValueView
			for _, r := range records {
				views = append(views, render.RecordViews(r)...)
			}
			return render.FormatJSONL(printer.Out(), views)
		}

		if len(args) == 1 {
			render.FormatRecord(printer.Out(), records[0])
		} else {
			render.FormatWorkspace(printer.Out(), ws)
		}
		return nil
	})
}

func runRename(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		ws.Rename(args[0])
		printer.Success("Renamed workspace to '%s'\n", args[0])
		return nil
	})
}

func runReset(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		ws.Reset()
		printer.Success("Reset workspace '%s'\n", ws.Name)
		return nil
	})
}

func runReload(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Reload(ctx); err != nil {
		return printer.Error("reload finished with problems", err.Error(), []string{"Fix the listed spec files and run 'oracles reload' again"})
	}
	printer.Success("Reloaded %d library oracles and %d workspace oracles\n", len(s.Library), len(s.Workspace.Oracles()))
	return nil
}
