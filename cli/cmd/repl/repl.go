package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/arith/lang"
	"github.com/ardnew/arith/log"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatEcho formats the echo of a submitted line with prompt and input
// styled for the given mode.
func formatEcho(input string, mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	sess         *session
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	evalText     string
	evalCursor   int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session with the given initial variable bindings.
// The bindings are copied; changes made in the session are not visible to
// the caller.
//
// History is persisted to historyPath unless it is empty.
func Run(
	ctx context.Context,
	vars lang.Vars,
	historyPath string,
	logger log.Logger,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", historyPath),
		slog.Int("var_count", len(vars)),
	)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, newSession(vars, logger, opts...), history)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, sess *session, history *History) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		sess:       sess,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	// Completion / hint line.
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		// History position indicator, 1-based for display
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		hint := "Type an expression, or :help for commands"
		if m.mode == modeCtrl {
			hint = "Type: " + strings.Join(commandNames(), ", ") +
				" (press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.sess.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes:
		// Space breaks out of tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected completion candidate by dir (1 or -1).
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also auto-confirms the completion when exactly
// one candidate remains and the typed word already equals that candidate.
// autoConfirm should be false for deletions and cursor navigation so that
// the user can freely edit without unexpected completions.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode
	if strings.HasPrefix(input, ":") {
		mode = modeCtrl
	}

	// Reset both mode inputs after submission
	m.evalText, m.evalCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, mode); err != nil {
		m.sess.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatEcho(input, m.mode))

	if mode == modeCtrl {
		return m.executeCommand(echo, input)
	}

	m.sess.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input))

	result, err := m.sess.eval(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render(describe(input, err))),
		)
	}

	return m, tea.Sequence(
		echo,
		tea.Println(resultStyle.Render(result.String())),
	)
}

func (m model) executeCommand(echo tea.Cmd, input string) (model, tea.Cmd) {
	out, err := m.sess.exec(m.ctxFunc(), input)

	switch {
	case errors.Is(err, errQuit):
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case errors.Is(err, errClear):
		return m, tea.ClearScreen

	case err != nil:
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)

	case out == "":
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

// historyStep moves through history by dir (1 or -1). With sameMode set,
// entries of the other mode are skipped; otherwise the mode follows the
// entry.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if m.mode != entry.Mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	// Stepping past the newest entry returns to an empty line.
	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to the specified mode, preserving the input of the
// mode being left.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeEval {
		m.evalText = m.input.Value()
		m.evalCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
		m.input.SetValue(m.evalText)
		m.input.SetCursor(m.evalCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m
}
