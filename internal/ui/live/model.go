// Package live is the interactive terminal front end for a quiz session.
package live

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rem7474/CCNA1/internal/missedlog"
	"github.com/Rem7474/CCNA1/internal/quiz"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	defaultWidth        = 80
	defaultTableHeight  = 12
)

// Options configures the live UI model.
type Options struct {
	NoColor bool
	// Missed receives incorrectly answered questions.
	Missed quiz.MissedLogger
	// Observer is notified of each scored question.
	Observer quiz.Observer
	// AnswerTimeout scores a question as missed when it expires. Zero waits
	// forever.
	AnswerTimeout time.Duration
	TickInterval  time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model renders a quiz session using Bubble Tea.
type Model struct {
	session       *quiz.Session
	state         State
	phase         phase
	input         textinput.Model
	table         table.Model
	missed        quiz.MissedLogger
	observer      quiz.Observer
	answerTimeout time.Duration
	tickInterval  time.Duration
	clock         func() time.Time
	now           time.Time
	deadline      time.Time
	last          quiz.Outcome
	inputError    string
	warnings      []string
	width         int
	noColor       bool
	interrupted   bool
}

// NewModel constructs a live UI model for a session.
func NewModel(session *quiz.Session, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = defaultTickInterval
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	observer := opts.Observer
	if observer == nil {
		observer = quiz.Observers(nil)
	}

	input := textinput.New()
	input.Prompt = quiz.AnswerPrompt
	input.Placeholder = "1,3"
	input.CharLimit = 64
	input.Focus()

	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	t.SetWidth(defaultWidth)
	t.SetHeight(defaultTableHeight)

	m := Model{
		session:       session,
		input:         input,
		table:         t,
		missed:        opts.Missed,
		observer:      observer,
		answerTimeout: opts.AnswerTimeout,
		tickInterval:  tickInterval,
		clock:         clock,
		now:           clock(),
		width:         defaultWidth,
		noColor:       opts.NoColor,
	}
	if session.Done() {
		m.phase = phaseFinished
	}
	m.armDeadline()
	return m
}

// Init starts the cursor blink and the timeout ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd())
}

// Update consumes key presses and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-8, 3))
		m.table.SetColumns(columnsForWidth(typed.Width))
		m.table.SetRows(rowsForState(m.state, m.questionWidth()))
		return m, nil
	case tickMsg:
		m.now = time.Time(typed)
		if m.phase == phaseAsking && !m.deadline.IsZero() && !m.now.Before(m.deadline) {
			if outcome, err := m.session.Timeout(); err == nil {
				m = m.applyOutcome(outcome)
			}
		}
		return m, m.tickCmd()
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.interrupted = !m.session.Done()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
		if m.phase == phaseFinished && typed.String() == "q" {
			return m, tea.Quit
		}
	}
	if m.phase != phaseAsking {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter submits an answer, advances past feedback, or quits.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseAsking:
		outcome, err := m.session.Submit(m.input.Value())
		m.input.SetValue("")
		var invalid *quiz.InvalidInputError
		if errors.As(err, &invalid) {
			m.inputError = quiz.MsgInvalid + invalid.Reason
			return m, nil
		}
		if err != nil {
			return m, nil
		}
		m.inputError = ""
		return m.applyOutcome(outcome), nil
	case phaseFeedback:
		if m.session.Done() {
			m.phase = phaseFinished
			return m, nil
		}
		m.phase = phaseAsking
		m.now = m.clock()
		m.armDeadline()
		return m, nil
	default:
		return m, tea.Quit
	}
}

// applyOutcome records a scored question and switches to feedback.
func (m Model) applyOutcome(outcome quiz.Outcome) Model {
	m.state = Reduce(m.state, outcome)
	m.last = outcome
	m.phase = phaseFeedback
	m.deadline = time.Time{}
	m.observer.OnAnswer(outcome)
	if !outcome.Correct && m.missed != nil {
		if err := m.missed.Append(missedlog.EntryFor(outcome.Record)); err != nil {
			m.warnings = append(m.warnings, quiz.MissedLogWarning(err))
		}
	}
	m.table.SetRows(rowsForState(m.state, m.questionWidth()))
	return m
}

func (m *Model) armDeadline() {
	if m.answerTimeout <= 0 || m.phase != phaseAsking {
		m.deadline = time.Time{}
		return
	}
	m.deadline = m.now.Add(m.answerTimeout)
}

func (m Model) questionWidth() int {
	return questionColumnWidth(m.width)
}

func (m Model) tickCmd() tea.Cmd {
	if m.answerTimeout <= 0 {
		return nil
	}
	return tick(m.tickInterval)
}

// View renders the live UI.
func (m Model) View() string {
	position := m.state.Answered
	if m.phase == phaseAsking {
		position++
	}
	header := renderHeader(m.state, position, m.session.Total(), m.noColor)
	sections := []string{header, ""}

	switch m.phase {
	case phaseAsking:
		record, _ := m.session.Current()
		sections = append(sections, renderQuestion(record), "", m.input.View())
		if m.inputError != "" {
			sections = append(sections, stylize(m.inputError, m.noColor, colorWrong))
		}
		if !m.deadline.IsZero() {
			remaining := m.deadline.Sub(m.now).Round(time.Second)
			sections = append(sections, renderHint("Temps restant : "+remaining.String(), m.noColor))
		}
	case phaseFeedback:
		sections = append(sections, renderQuestion(m.last.Record), "", renderFeedback(m.last, m.noColor), "",
			renderHint("Entrée pour continuer, Échap pour arrêter", m.noColor))
	case phaseFinished:
		sections = append(sections, renderScore(m.state, m.noColor), "", m.table.View(), "",
			renderHint("q pour quitter", m.noColor))
	}
	for _, warning := range m.warnings {
		sections = append(sections, stylize(warning, m.noColor, colorWarning))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// State returns the current tally.
func (m Model) State() State {
	return m.state
}

// Interrupted reports whether the user quit before the session finished.
func (m Model) Interrupted() bool {
	return m.interrupted
}

// Warnings returns non-fatal problems collected during the session.
func (m Model) Warnings() []string {
	return append([]string(nil), m.warnings...)
}

// tickMsg carries a clock tick for timeout checks.
type tickMsg time.Time

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
