package commands

import (
	"fmt"

	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/render"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/spf13/cobra"
)

var (
	pickCount  int
	pickRecord string

	chooseRecord string
)

var addCmd = &cobra.Command{
	Use:   "add ORACLE...",
	Short: "Add oracles from the catalog to the workspace",
	Long: `Add one or more oracles to the workspace. ORACLE is a catalog number or name
(see 'oracles catalog'). Each added oracle gets its own full set of values, so
adding the same oracle twice gives two independent decks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var removeCmd = &cobra.Command{
	Use:   "remove ORACLE",
	Short: "Remove an oracle from the workspace",
	Long: `Remove an oracle from the workspace. Values already drawn from it stay in
their records. ORACLE is a workspace number or name (see 'oracles show').`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle ORACLE",
	Short: "Shuffle the remaining values of an oracle",
	Args:  cobra.ExactArgs(1),
	RunE:  runShuffle,
}

var pickCmd = &cobra.Command{
	Use:   "pick ORACLE",
	Short: "Draw values from an oracle",
	Long: `Draw one or more values from a workspace oracle into a record (the selected
record unless --record is given).

Finite oracles lose each drawn value until it is returned; infinite oracles,
such as dice, can produce the same value again.`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

var chooseCmd = &cobra.Command{
	Use:   "choose ORACLE [ID]",
	Short: "Draw a specific value from an oracle",
	Long: `Take a chosen identifier out of a workspace oracle instead of a random one.
Without ID, lists the identifiers that can currently be chosen.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runChoose,
}

func init() {
	pickCmd.Flags().IntVarP(&pickCount, "count", "n", 1, "Number of values to draw")
	pickCmd.Flags().StringVarP(&pickRecord, "record", "r", "", "Record receiving the values (default: selected record)")
	chooseCmd.Flags().StringVarP(&chooseRecord, "record", "r", "", "Record receiving the value (default: selected record)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(chooseCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		for _, ref := range args {
			o, err := libraryOracle(s, ref)
			if err != nil {
				return err
			}
			added, err := ws.AddNewOracle(o)
			if err != nil {
				return printer.Error(fmt.Sprintf("failed to add oracle '%s'", o.Name()), err.Error(), nil)
			}
			printer.Success("Added '%s' (%s values)\n", added.Name(), added.Remaining())
		}
		return nil
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		o, err := workspaceOracle(ws, args[0])
		if err != nil {
			return err
		}
		if err := ws.RemoveOracle(o); err != nil {
			return printer.Error("failed to remove oracle", err.Error(), nil)
		}
		printer.Success("Removed '%s'\n", o.Name())
		return nil
	})
}

func runShuffle(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		o, err := workspaceOracle(ws, args[0])
		if err != nil {
			return err
		}
		if !o.Source().Finite() {
			printer.Warning("'%s' is not finite, shuffling has no effect\n", o.Name())
			return nil
		}
		o.Shuffle()
		printer.Success("Shuffled '%s' (%s values)\n", o.Name(), o.Remaining())
		return nil
	})
}

// targetRecord resolves --record, defaulting to the selected record
func targetRecord(ws *workspace.Workspace, ref string) (*workspace.Record, error) {
	if ref == "" {
		return ws.Selected(), nil
	}
	return workspaceRecord(ws, ref)
}

func runPick(cmd *cobra.Command, args []string) error {
	if pickCount < 1 {
		return printer.Error("invalid count", fmt.Sprintf("--count must be at least 1, got %d", pickCount), nil)
	}

	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		o, err := workspaceOracle(ws, args[0])
		if err != nil {
			return err
		}
		r, err := targetRecord(ws, pickRecord)
		if err != nil {
			return err
		}

		values, err := ws.Draw(r, o, pickCount)
		for _, v := range values {
			render.FormatValue(printer.Out(), render.NewValueView(r.Name, v))
		}
		if err != nil {
			return drawError(o, err)
		}
		return nil
	})
}

func runChoose(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return view(func(s *session.Session, ws *workspace.Workspace) error {
			o, err := workspaceOracle(ws, args[0])
			if err != nil {
				return err
			}
			choices := o.Choices()
			if len(choices) == 0 {
				printer.Info("'%s' has no values left\n", o.Name())
				return nil
			}
			printer.Heading("Values available in '%s':", o.Name())
			for _, id := range choices {
				printer.Println("  " + id)
			}
			return nil
		})
	}

	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		o, err := workspaceOracle(ws, args[0])
		if err != nil {
			return err
		}
		r, err := targetRecord(ws, chooseRecord)
		if err != nil {
			return err
		}

		v, err := ws.Choose(r, o, args[1])
		if err != nil {
			return drawError(o, err)
		}
		if v == nil {
			return printer.Error(
				fmt.Sprintf("'%s' is not available", args[1]),
				fmt.Sprintf("'%s' has no value '%s' left to draw.", o.Name(), args[1]),
				[]string{fmt.Sprintf("List the values that can be chosen:\n  oracles choose %q", args[0])},
			)
		}
		render.FormatValue(printer.Out(), render.NewValueView(r.Name, v))
		return nil
	})
}
