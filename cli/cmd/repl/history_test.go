package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
)

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	for _, e := range []HistoryEntry{
		{"1 + 2", modeEval},
		{"vars", modeCtrl},
		{"x * 3", modeEval},
		{"x * 3", modeEval},
		{"1 + 2", modeEval},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q): %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"vars", modeCtrl},
		{"x * 3", modeEval},
		{"1 + 2", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:vars\nE:x * 3\nE:1 + 2\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestHistoryEntry(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("  ", modeEval); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 0 {
		t.Fatalf("Len() = %d after blank Add, want 0", h.Len())
	}

	if err := h.Add("x", modeEval); err != nil {
		t.Fatal(err)
	}

	if e, err := h.Entry(0); err != nil || e.Line != "x" {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), HistoryFile))

	for i := range maxHistory + 5 {
		if err := h.Add(strconv.Itoa(i), modeEval); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != maxHistory {
		t.Fatalf("Len() = %d, want %d", h.Len(), maxHistory)
	}

	if e, _ := h.Entry(0); e.Line != "5" {
		t.Errorf("oldest entry = %q, want %q", e.Line, "5")
	}
}
