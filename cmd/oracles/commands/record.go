package commands

import (
	"errors"
	"fmt"

	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/spf13/cobra"
)

var (
	recordNewSelect bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage the records holding drawn values",
	Long: `Records are named lists of drawn values. Draws go to the selected record
unless a command is given --record. RECORD is a record number or name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var recordNewCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a new record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordNew,
}

var recordRenameCmd = &cobra.Command{
	Use:   "rename RECORD NAME",
	Short: "Rename a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordRename,
}

var recordRemoveCmd = &cobra.Command{
	Use:   "remove RECORD",
	Short: "Remove a record, returning its values to their oracles",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordRemove,
}

var recordClearCmd = &cobra.Command{
	Use:   "clear RECORD",
	Short: "Return every value of a record to its oracle",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordClear,
}

var recordSelectCmd = &cobra.Command{
	Use:   "select RECORD",
	Short: "Select the record receiving draws",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordSelect,
}

var recordListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records",
	Args:  cobra.NoArgs,
	RunE:  runRecordList,
}

func init() {
	recordNewCmd.Flags().BoolVarP(&recordNewSelect, "select", "s", false, "Select the new record")

	recordCmd.AddCommand(recordNewCmd)
	recordCmd.AddCommand(recordRenameCmd)
	recordCmd.AddCommand(recordRemoveCmd)
	recordCmd.AddCommand(recordClearCmd)
	recordCmd.AddCommand(recordSelectCmd)
	recordCmd.AddCommand(recordListCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordNew(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		ws.AddNewRecord(args[0])
		if recordNewSelect {
			if err := ws.Select(len(ws.Records()) - 1); err != nil {
				return printer.Error("failed to select record", err.Error(), nil)
			}
		}
		printer.Success("Created record '%s'\n", args[0])
		return nil
	})
}

func runRecordRename(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		r, err := workspaceRecord(ws, args[0])
		if err != nil {
			return err
		}
		old := r.Name
		if err := ws.RenameRecord(r, args[1]); err != nil {
			return printer.Error("failed to rename record", err.Error(), nil)
		}
		printer.Success("Renamed record '%s' to '%s'\n", old, args[1])
		return nil
	})
}

func runRecordRemove(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		r, err := workspaceRecord(ws, args[0])
		if err != nil {
			return err
		}
		n := r.Len()
		if err := ws.RemoveRecord(r); err != nil {
			if errors.Is(err, workspace.ErrLastRecord) {
				return printer.Error(
					"cannot remove the last record",
					"A workspace always keeps at least one record.",
					[]string{fmt.Sprintf("Clear it instead:\n  oracles record clear %q", r.Name)},
				)
			}
			return printer.Error("failed to remove record", err.Error(), nil)
		}
		printer.Success("Removed record '%s' (%d values returned)\n", r.Name, n)
		return nil
	})
}

func runRecordClear(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		r, err := workspaceRecord(ws, args[0])
		if err != nil {
			return err
		}
		n := r.Len()
		if err := ws.ClearRecord(r); err != nil {
			return printer.Error("failed to clear record", err.Error(), nil)
		}
		printer.Success("Cleared record '%s' (%d values returned)\n", r.Name, n)
		return nil
	})
}

func runRecordSelect(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		r, err := workspaceRecord(ws, args[0])
		if err != nil {
			return err
		}
		if err := ws.SelectRecord(r); err != nil {
			return printer.Error("failed to select record", err.Error(), nil)
		}
		printer.Success("Selected record '%s'\n", r.Name)
		return nil
	})
}

func runRecordList(cmd *cobra.Command, args []string) error {
	return view(func(s *session.Session, ws *workspace.Workspace) error {
		for i, r := range ws.Records() {
			marker := " "
			if i == ws.SelectedIndex() {
				marker = "*"
			}
			printer.Printf("%s %d. %s (%d values)\n", marker, i+1, r.Name, r.Len())
		}
		return nil
	})
}
