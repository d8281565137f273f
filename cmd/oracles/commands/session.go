package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/resolver"
	"github.com/dyluth/oracles/internal/session"
	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/dyluth/oracles/pkg/workspace"
)

// loadConfig reads the configuration named by --config, falling back to defaults
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{fmt.Sprintf("Fix %s, or recreate it:\n  oracles init --force", configPath)},
		)
	}
	return cfg, nil
}

// openSession loads the library and the saved workspace. Library problems are
// reported as warnings so that the rest of the library stays usable.
func openSession(ctx context.Context) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	s, err := session.Open(ctx, cfg, session.WithLogger(logger))
	if err != nil {
		if oracle.IsSpecLoad(err) {
			return nil, printer.Error(
				"source catalog not found",
				err.Error(),
				[]string{"Create a project with example oracles:\n  oracles init"},
			)
		}
		return nil, printer.Error("failed to open workspace", err.Error(), nil)
	}

	if s.SnapshotErr != nil {
		printer.Warning("The saved workspace could not be restored, starting fresh:\n%s\n", indent(s.SnapshotErr))
	}
	if s.LibraryErr != nil {
		printer.Warning("Some oracle specs could not be loaded:\n%s\n", indent(s.LibraryErr))
	}
	if s.UpdateErr != nil {
		printer.Warning("The workspace does not match the spec files:\n%s\n", indent(s.UpdateErr))
	}
	return s, nil
}

// mutate opens a session, applies fn and saves the workspace
func mutate(fn func(s *session.Session, ws *workspace.Workspace) error) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Mutate(ctx, func(ws *workspace.Workspace) error {
		return fn(s, ws)
	})
}

// view opens a session without saving it
func view(fn func(s *session.Session, ws *workspace.Workspace) error) error {
	s, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s, s.Workspace)
}

// resolveError turns a reference error into a printed error
func resolveError(kind, ref string, err error, listHint string) error {
	switch {
	case resolver.IsNotFoundError(err):
		return printer.Error(
			fmt.Sprintf("%s '%s' not found", kind, ref),
			fmt.Sprintf("No %s matches '%s'.", kind, ref),
			[]string{listHint},
		)
	case resolver.IsAmbiguousError(err):
		return printer.Error(
			fmt.Sprintf("ambiguous %s reference", kind),
			resolver.FormatAmbiguousError(err.(*resolver.AmbiguousError)),
			nil,
		)
	default:
		return printer.Error(fmt.Sprintf("invalid %s reference", kind), err.Error(), []string{listHint})
	}
}

func workspaceOracle(ws *workspace.Workspace, ref string) (*oracle.Oracle, error) {
	o, err := resolver.ResolveOracle(ws.Oracles(), ref)
	if err != nil {
		return nil, resolveError("oracle", ref, err, "List the workspace oracles:\n  oracles show")
	}
	return o, nil
}

func libraryOracle(s *session.Session, ref string) (*oracle.Oracle, error) {
	o, err := resolver.ResolveOracle(s.Library, ref)
	if err != nil {
		return nil, resolveError("oracle", ref, err, "List the available oracles:\n  oracles catalog")
	}
	return o, nil
}

func workspaceRecord(ws *workspace.Workspace, ref string) (*workspace.Record, error) {
	r, err := resolver.ResolveRecord(ws, ref)
	if err != nil {
		return nil, resolveError("record", ref, err, "List the records:\n  oracles record list")
	}
	return r, nil
}

func drawnValue(ws *workspace.Workspace, ref string) (resolver.ValueMatch, error) {
	m, err := resolver.ResolveValue(ws, ref)
	if err != nil {
		return m, resolveError("value", ref, err, "List drawn values with their IDs:\n  oracles show")
	}
	return m, nil
}

// drawError explains errors raised while drawing from o
func drawError(o *oracle.Oracle, err error) error {
	var lookup *oracle.LookupError
	switch {
	case oracle.IsEmpty(err):
		return printer.Error(
			fmt.Sprintf("oracle '%s' is empty", o.Name()),
			"Every value has been drawn.",
			[]string{
				"Return drawn values:\n  oracles return <value>",
				"Clear the record holding them:\n  oracles record clear <record>",
			},
		)
	case errors.As(err, &lookup):
		return printer.ErrorWithContext(
			"value missing from spec",
			"The drawn identifier has no entry in the oracle's spec file.",
			map[string]string{"oracle": lookup.Oracle, "identifier": lookup.ID},
			[]string{"Add the entry to the spec file, then run:\n  oracles reload"},
		)
	default:
		return printer.Error("command failed", err.Error(), nil)
	}
}

func indent(err error) string {
	lines := strings.Split(err.Error(), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
