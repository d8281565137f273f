// Package render formats workspaces, records and the oracle library for the CLI.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/dyluth/oracles/pkg/workspace"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies how listings are written.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated text
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs one JSON object per line
	OutputFormatJSONL OutputFormat = "jsonl"

	// OutputFormatYAML and OutputFormatJSON are used for spec dumps
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// ValueView is the resolved, display-ready form of a drawn value.
// Problems resolving the value against its oracle's spec end up in Error.
type ValueView struct {
	UID         string `json:"uid"`
	Record      string `json:"record"`
	Oracle      string `json:"oracle"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	Meaning     string `json:"meaning,omitempty"`
	Image       string `json:"image,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewValueView resolves v for display.
func NewValueView(record string, v *oracle.Value) ValueView {
	view := ValueView{
		UID:    v.UID,
		Record: record,
		Oracle: v.Oracle().Name(),
		ID:     v.ID,
		State:  v.State,
	}

	var errs []string
	collect := func(s string, err error) string {
		if err != nil {
			errs = append(errs, err.Error())
		}
		return s
	}
	view.Name = collect(v.Name())
	view.Description = collect(v.Description())
	view.Meaning = collect(v.Meaning())
	view.Image = collect(v.Image())

	if view.Name == "" {
		view.Name = v.ID
	}
	if len(errs) > 0 {
		view.Error = errs[0]
	}
	return view
}

// RecordViews resolves every value of r.
func RecordViews(r *workspace.Record) []ValueView {
	views := make([]ValueView, 0, r.Len())
	for _, v := range r.Values() {
		views = append(views, NewValueView(r.Name, v))
	}
	return views
}

// FormatRecord writes a record's values as a table.
// Returns the number of values formatted.
func FormatRecord(w io.Writer, r *workspace.Record) int {
	views := RecordViews(r)
	if len(views) == 0 {
		fmt.Fprintf(w, "Record '%s' is empty\n", r.Name)
		return 0
	}

	fmt.Fprintf(w, "Record '%s':\n\n", r.Name)

	fmt.Fprintf(w, "%-8s %-16s %-24s %-10s %s\n", "UID", "ORACLE", "NAME", "STATE", "MEANING")
	fmt.Fprintf(w, "%-8s %-16s %-24s %-10s %s\n",
		"--------", "----------------", "------------------------", "----------", "----------------------------------------")

	for _, v := range views {
		meaning := formatText(v.Meaning)
		if v.Error != "" {
			meaning = "! " + v.Error
		}
		fmt.Fprintf(w, "%-8s %-16s %-24s %-10s %s\n",
			formatID(v.UID),
			truncate(v.Oracle, 16),
			truncate(v.Name, 24),
			formatState(v.State),
			meaning,
		)
	}

	countMsg := "value"
	if len(views) != 1 {
		countMsg = "values"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(views), countMsg)
	return len(views)
}

// FormatWorkspace writes the workspace's oracles and records, followed by the
// selected record's values.
func FormatWorkspace(w io.Writer, ws *workspace.Workspace) {
	fmt.Fprintf(w, "Workspace '%s'\n\n", ws.Name)

	if len(ws.Oracles()) == 0 {
		fmt.Fprintf(w, "No oracles added\n")
	} else {
		fmt.Fprintf(w, "%-3s %-24s %s\n", "#", "ORACLE", "LEFT")
		for i, o := range ws.Oracles() {
			fmt.Fprintf(w, "%-3d %-24s %s\n", i+1, truncate(o.Name(), 24), o.Remaining())
		}
	}

	fmt.Fprintf(w, "\n%-3s %-24s %s\n", "#", "RECORD", "VALUES")
	for i, r := range ws.Records() {
		marker := ""
		if i == ws.SelectedIndex() {
			marker = " *"
		}
		fmt.Fprintf(w, "%-3d %-24s %d%s\n", i+1, truncate(r.Name, 24), r.Len(), marker)
	}

	fmt.Fprintln(w)
	FormatRecord(w, ws.Selected())
}

// FormatValue writes a single value's full details.
func FormatValue(w io.Writer, view ValueView) {
	fmt.Fprintf(w, "%s  (%s, %s)\n", view.Name, view.Oracle, formatID(view.UID))
	if view.State != "" {
		fmt.Fprintf(w, "  state:       %s\n", view.State)
	}
	if view.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", view.Description)
	}
	if view.Meaning != "" {
		fmt.Fprintf(w, "  meaning:     %s\n", view.Meaning)
	}
	if view.Image != "" {
		fmt.Fprintf(w, "  image:       %s\n", view.Image)
	}
	if view.Error != "" {
		fmt.Fprintf(w, "  error:       %s\n", view.Error)
	}
}

// FormatJSONL writes each item as a single JSON object on its own line.
func FormatJSONL[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatSpec writes a spec document as YAML or pretty-printed JSON.
func FormatSpec(w io.Writer, spec *oracle.Spec, format OutputFormat) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case OutputFormatYAML, "":
		data, err = yaml.Marshal(spec)
	case OutputFormatJSON:
		data, err = json.MarshalIndent(spec, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write spec: %w", err)
	}
	return nil
}

// formatID truncates a UID to its first 8 characters for compact display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatState(state string) string {
	if state == "" {
		return "-"
	}
	return truncate(state, 10)
}

// formatText reduces text to its first non-empty line, max 40 characters.
// Empty text returns "-".
func formatText(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return truncate(trimmed, 40)
		}
	}
	return "-"
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
