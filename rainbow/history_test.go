package rainbow

import (
	"testing"
)

func TestHistoryEntrySnapshot(t *testing.T) {
	params := map[string]any{"axis": "wavelength"}
	entry := newHistoryEntry("normalize", params)
	params["axis"] = "time" // later edits must not leak into the record
	if entry.Params["axis"] != "wavelength" {
		t.Fatalf("params not snapshotted: got %v", entry.Params["axis"])
	}
}

func TestHistoryEntryString(t *testing.T) {
	entry := newHistoryEntry("normalize", map[string]any{
		"percentile": 50.0,
		"axis":       "wavelength",
	})
	want := "normalize(axis=wavelength, percentile=50)"
	if got := entry.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestHistoryAccumulatesAcrossPipeline(t *testing.T) {
	r := mustNew(t, 2, 12, 5, 0.1)
	normalized, err := r.Normalize("wavelength")
	if err != nil {
		t.Fatal(err)
	}
	detrended, err := normalized.RemoveTrends(TrendMedianFilter, WithFilterSize(1, 3))
	if err != nil {
		t.Fatal(err)
	}
	history := detrended.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Action != "normalize" || history[1].Action != "remove_trends" {
		t.Fatalf("unexpected actions: %q, %q", history[0].Action, history[1].Action)
	}
	if len(normalized.History()) != 1 {
		t.Fatal("intermediate container history was mutated")
	}
}

func TestHistoryReturnsCopy(t *testing.T) {
	r := mustNew(t, 1, 3, 1, 0)
	z, err := r.Add(Scalar(1))
	if err != nil {
		t.Fatal(err)
	}
	got := z.History()
	got[0].Action = "tampered"
	if z.History()[0].Action != "+" {
		t.Fatal("History() exposed internal storage")
	}
}
