package rainbow

import (
	"fmt"
	"sort"
	"strings"
)

// HistoryEntry is an immutable record of one applied transformation: the
// action name and a snapshot of its declared parameters. Entries never carry
// array payloads; operands are recorded by their shape descriptors.
type HistoryEntry struct {
	Action string
	Params map[string]any
}

// newHistoryEntry snapshots the action name and parameters before a
// transformation executes, so the record is unaffected by anything the
// transformation later does.
func newHistoryEntry(action string, params map[string]any) HistoryEntry {
	snapshot := make(map[string]any, len(params))
	for k, v := range params {
		snapshot[k] = v
	}
	return HistoryEntry{Action: action, Params: snapshot}
}

// String renders the entry as a call-like line with parameters in key order.
func (e HistoryEntry) String() string {
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, e.Params[k])
	}
	return fmt.Sprintf("%s(%s)", e.Action, strings.Join(parts, ", "))
}

// recordHistory appends entry to r's ledger. It is only ever called on a
// freshly copied container, never on a source.
func (r *Rainbow) recordHistory(entry HistoryEntry) {
	r.history = append(r.history, entry)
}

// History returns a copy of the provenance ledger in application order.
func (r *Rainbow) History() []HistoryEntry {
	out := make([]HistoryEntry, len(r.history))
	copy(out, r.history)
	return out
}

// historyContains reports whether any recorded action matches name.
func (r *Rainbow) historyContains(name string) bool {
	for _, e := range r.history {
		if e.Action == name {
			return true
		}
	}
	return false
}
