package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dyluth/oracles/internal/printer"
	"github.com/dyluth/oracles/internal/render"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// cliResult is the captured outcome of one CLI invocation.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// resetFlags restores every flag to its default so invocations don't leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command against the project in dir.
func runCLI(t *testing.T, dir string, args ...string) cliResult {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	var out, errOut bytes.Buffer
	printer.SetOutput(&out, &errOut)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	defer func() {
		printer.SetOutput(nil, nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		color.NoColor = noColor
		resetFlags(rootCmd)
	}()

	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "oracles.yml")}, args...))
	err := Execute()
	return cliResult{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// mustRun runs the CLI and fails the test on error.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	res := runCLI(t, dir, args...)
	require.NoError(t, res.Err, "oracles %s\nstdout:\n%s\nstderr:\n%s", strings.Join(args, " "), res.Stdout, res.Stderr)
	return res.Stdout
}

// newProject initializes a project in a fresh directory with a fixed seed.
func newProject(t *testing.T) string {
	t.Helper()
	t.Setenv("ORACLES_SEED", "42")
	dir := t.TempDir()
	mustRun(t, dir, "init")
	return dir
}

// drawnValues lists the values of every record via show -o jsonl.
func drawnValues(t *testing.T, dir string, args ...string) []render.ValueView {
	t.Helper()
	out := mustRun(t, dir, append([]string{"show", "-o", "jsonl"}, args...)...)

	var views []render.ValueView
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var v render.ValueView
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &v))
		views = append(views, v)
	}
	require.NoError(t, scanner.Err())
	return views
}
