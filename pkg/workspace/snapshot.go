package workspace

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dyluth/oracles/pkg/oracle"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// Snapshot is the full persisted state of a Workspace. It is self-contained:
// specs and source state are stored, so a workspace can be restored even when
// its spec files have moved.
type Snapshot struct {
	Version       int           `json:"version"`
	Name          string        `json:"name"`
	DefaultRecord string        `json:"default_record,omitempty"`
	Selected      int           `json:"selected"`
	Oracles       []OracleState `json:"oracles"`
	Records       []RecordState `json:"records"`
	SavedAtMs     int64         `json:"saved_at_ms"`
}

// OracleState is a persisted oracle. Inactive oracles were removed from the
// workspace but still back drawn values.
type OracleState struct {
	ID     string             `json:"id"`
	Path   string             `json:"path,omitempty"`
	Active bool               `json:"active"`
	Spec   *oracle.Spec       `json:"spec"`
	Source oracle.SourceState `json:"source"`
}

// RecordState is a persisted record.
type RecordState struct {
	Name   string       `json:"name"`
	Values []ValueState `json:"values"`
}

// ValueState is a persisted drawn value. Oracle refers to OracleState.ID.
type ValueState struct {
	UID    string `json:"uid"`
	Oracle string `json:"oracle"`
	ID     string `json:"id"`
	State  string `json:"state,omitempty"`
}

// Snapshot captures the workspace's full state.
func (w *Workspace) Snapshot() *Snapshot {
	s := &Snapshot{
		Version:       SnapshotVersion,
		Name:          w.Name,
		DefaultRecord: w.defaultRecord,
		Selected:      w.selected,
		Oracles:       []OracleState{},
		Records:       make([]RecordState, 0, len(w.records)),
		SavedAtMs:     time.Now().UnixMilli(),
	}

	active := make(map[*oracle.Oracle]bool, len(w.oracles))
	for _, o := range w.oracles {
		active[o] = true
	}
	for _, o := range w.referencedOracles() {
		s.Oracles = append(s.Oracles, OracleState{
			ID:     o.ID,
			Path:   o.Path,
			Active: active[o],
			Spec:   o.Spec().Clone(),
			Source: o.Source().State(),
		})
	}

	for _, r := range w.records {
		rs := RecordState{Name: r.Name, Values: make([]ValueState, 0, len(r.values))}
		for _, v := range r.values {
			rs.Values = append(rs.Values, ValueState{UID: v.UID, Oracle: v.Oracle().ID, ID: v.ID, State: v.State})
		}
		s.Records = append(s.Records, rs)
	}
	return s
}

// Restore rebuilds a workspace from a snapshot. A snapshot without records gets
// the default record; an out of range selection falls back to the first record.
func Restore(s *Snapshot, b *oracle.Builder) (*Workspace, error) {
	w := New(s.Name, b, WithDefaultRecord(s.DefaultRecord))

	byID := make(map[string]*oracle.Oracle, len(s.Oracles))
	for _, st := range s.Oracles {
		if _, dup := byID[st.ID]; dup {
			return nil, fmt.Errorf("duplicate oracle id %s", st.ID)
		}
		o, err := b.Restore(st.ID, st.Path, st.Spec, st.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to restore oracle %s: %w", st.ID, err)
		}
		byID[st.ID] = o
		if st.Active {
			w.oracles = append(w.oracles, o)
		}
	}

	if len(s.Records) > 0 {
		w.records = make([]*Record, 0, len(s.Records))
	}
	for _, rs := range s.Records {
		r := NewRecord(rs.Name)
		for _, vs := range rs.Values {
			o, ok := byID[vs.Oracle]
			if !ok {
				return nil, fmt.Errorf("record '%s': value %s refers to unknown oracle %s", rs.Name, vs.UID, vs.Oracle)
			}
			r.Add(oracle.RestoreValue(o, vs.UID, vs.ID, vs.State))
		}
		w.records = append(w.records, r)
	}

	if s.Selected >= 0 && s.Selected < len(w.records) {
		w.selected = s.Selected
	}
	return w, nil
}

// MarshalSnapshot encodes a snapshot as indented JSON.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a snapshot and checks its version.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version: %d (expected: %d)", s.Version, SnapshotVersion)
	}
	return &s, nil
}
