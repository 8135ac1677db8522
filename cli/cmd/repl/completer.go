package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, the operators and parentheses of the expression
// grammar, and the ':' command prefix.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')', '+', '-', '*', '/', ':', '=':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// an operator, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completesCommand reports whether the word starting at wordStart names a
// command: the first word of a control-mode line, or the word directly after
// a leading ':' in eval mode.
func completesCommand(input string, wordStart int, mode inputMode) bool {
	prefix := strings.TrimLeft(input[:wordStart], " \t")

	if mode == modeCtrl {
		return prefix == "" || prefix == ":"
	}

	return prefix == ":"
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. An empty word yields no matches so the hint stays visible.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if completesCommand(input, wordStart, m.mode) {
		candidates = commandNames()
	} else {
		candidates = slices.Sorted(maps.Keys(m.sess.vars))
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Reserve room for the ellipsis unless this is the last candidate.
		reserve := ellipsisWidth
		if i == len(matches)-1 {
			reserve = 0
		}

		if used+entryWidth+reserve > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
