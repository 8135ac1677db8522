package repl

import (
	"strings"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_minus", "x-fo", 4, "fo", 2, 4},
		{"after_slash", "x/fo", 4, "fo", 2, 4},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "x_1 * y", 3, "x_1", 0, 3},
		{"command", ":si", 3, "si", 1, 3},
		{"command_arg", ":set fo", 7, "fo", 5, 7},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCompletesCommand(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		mode      inputMode
		want      bool
	}{
		{"eval_plain", "fo", 0, modeEval, false},
		{"eval_colon", ":fo", 1, modeEval, true},
		{"eval_colon_arg", ":set fo", 5, modeEval, false},
		{"eval_operand", "x + fo", 4, modeEval, false},
		{"ctrl_first", "fo", 0, modeCtrl, true},
		{"ctrl_colon", ":fo", 1, modeCtrl, true},
		{"ctrl_arg", "set fo", 4, modeCtrl, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := completesCommand(tt.input, tt.wordStart, tt.mode); got != tt.want {
				t.Errorf("completesCommand(%q, %d) = %v, want %v",
					tt.input, tt.wordStart, got, tt.want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("a", []string{"alpha", "beta", "gamma", "delta"})

	if got := renderCandidateBar(nil, -1, false, 80); got != "" {
		t.Errorf("renderCandidateBar(nil) = %q, want empty", got)
	}

	if got := renderCandidateBar(matches, -1, false, 0); got != "" {
		t.Errorf("renderCandidateBar(width 0) = %q, want empty", got)
	}

	wide := renderCandidateBar(matches, -1, false, 80)
	if strings.Contains(wide, "...") {
		t.Errorf("wide bar unexpectedly ellipsized: %q", wide)
	}

	narrow := renderCandidateBar(matches, -1, false, 12)
	if !strings.Contains(narrow, "...") {
		t.Errorf("narrow bar not ellipsized: %q", narrow)
	}
}
