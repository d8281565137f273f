package commands

import (
	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/render"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/spf13/cobra"
)

var discardCmd = &cobra.Command{
	Use:   "discard VALUE",
	Short: "Remove a drawn value from its record",
	Long: `Remove a drawn value from its record without returning it to its oracle.
VALUE is the value's ID or a prefix of at least 6 characters (see 'oracles show').`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscard,
}

var returnCmd = &cobra.Command{
	Use:   "return VALUE",
	Short: "Put a drawn value back into its oracle",
	Long: `Remove a drawn value from its record and put its identifier back at the end
of its oracle, so it can be drawn again.`,
	Args: cobra.ExactArgs(1),
	RunE: runReturn,
}

var stateCmd = &cobra.Command{
	Use:   "state VALUE",
	Short: "Cycle a drawn value to its oracle's next state",
	Long: `Move a drawn value to the next state declared by its oracle, wrapping around
(e.g. upright -> reversed -> upright).`,
	Args: cobra.ExactArgs(1),
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(discardCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(stateCmd)
}

func runDiscard(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		m, err := drawnValue(ws, args[0])
		if err != nil {
			return err
		}
		if err := m.Record.Discard(m.Value); err != nil {
			return printer.Error("failed to discard value", err.Error(), nil)
		}
		printer.Success("Discarded '%s' from '%s'\n", m.Value.ID, m.Record.Name)
		return nil
	})
}

func runReturn(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		m, err := drawnValue(ws, args[0])
		if err != nil {
			return err
		}
		if err := m.Record.Return(m.Value); err != nil {
			return printer.Error("failed to return value", err.Error(), nil)
		}
		o := m.Value.Oracle()
		printer.Success("Returned '%s' to '%s' (%s values)\n", m.Value.ID, o.Name(), o.Remaining())
		return nil
	})
}

func runState(cmd *cobra.Command, args []string) error {
	return mutate(func(s *session.Session, ws *workspace.Workspace) error {
		m, err := drawnValue(ws, args[0])
		if err != nil {
			return err
		}
		if len(m.Value.Oracle().Spec().States) == 0 {
			printer.Warning("'%s' declares no states\n", m.Value.Oracle().Name())
			return nil
		}
		m.Value.CycleState()
		render.FormatValue(printer.Out(), render.NewValueView(m.Record.Name, m.Value))
		return nil
	})
}
