package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

// HistoryFile is the base name of the history file in the cache directory.
const HistoryFile = "history.utf8"

// maxHistory bounds the number of entries kept in memory and on disk.
const maxHistory = 1000

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages input history with file persistence.
//
// Entries are stored one per line, prefixed with "E:" for expressions and
// "C:" for commands. An empty path keeps history in memory only.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is not
// an error.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry := HistoryEntry{Line: line, Mode: modeEval}

		if s, ok := strings.CutPrefix(line, "E:"); ok {
			entry.Line = s
		} else if s, ok := strings.CutPrefix(line, "C:"); ok {
			entry = HistoryEntry{Line: s, Mode: modeCtrl}
		}

		h.entries = append(h.entries, entry)
	}

	if len(h.entries) > maxHistory {
		h.entries = slices.Clone(h.entries[len(h.entries)-maxHistory:])
	}

	return scanner.Err()
}

// Add appends a new entry to the history with the specified mode.
// An earlier duplicate (same line and mode) is moved to the end.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry := HistoryEntry{Line: line, Mode: mode}

	// Skip if same as last entry
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	i := slices.Index(h.entries, entry)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, entry)

	if len(h.entries) > maxHistory {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-maxHistory)
		i = 0
	}

	if h.path == "" {
		return nil
	}

	// A removed entry requires the whole file to be rewritten
	if i >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.encode())

	return err
}

// Entry retrieves a historic entry by index. Index 0 is the oldest entry.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of all history entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, entry := range h.entries {
		if _, err := w.WriteString(entry.encode()); err != nil {
			return err
		}
	}

	return w.Flush()
}

func (e HistoryEntry) encode() string {
	if e.Mode == modeCtrl {
		return "C:" + e.Line + "\n"
	}

	return "E:" + e.Line + "\n"
}
