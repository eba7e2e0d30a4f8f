package live

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rem7474/CCNA1/internal/bank"
	"github.com/Rem7474/CCNA1/internal/missedlog"
	"github.com/Rem7474/CCNA1/internal/quiz"
)

var (
	colorHeader  = lipgloss.Color("33")
	colorDim     = lipgloss.Color("242")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
)

// renderHeader renders the progress line.
func renderHeader(state State, position, total int, noColor bool) string {
	line := fmt.Sprintf("Question %d / %d | Score : %d / %d", position, total, state.Correct, state.Answered)
	return stylize(line, noColor, colorHeader)
}

// renderQuestion renders the question text and numbered choices.
func renderQuestion(record bank.Record) string {
	var b strings.Builder
	b.WriteString(record.Question)
	b.WriteString("\n\n")
	for i, choice := range record.Choices {
		fmt.Fprintf(&b, "Réponse %d : %s\n", i+1, choice)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderFeedback renders the verdict for the last answer.
func renderFeedback(outcome quiz.Outcome, noColor bool) string {
	var lines []string
	if outcome.TimedOut {
		lines = append(lines, stylize(quiz.MsgTimeout, noColor, colorWarning))
	}
	if outcome.Correct {
		lines = append(lines, stylize(quiz.MsgCorrect, noColor, colorCorrect))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, stylize(quiz.MsgIncorrect, noColor, colorWrong), quiz.MsgCorrectList)
	for _, choice := range missedlog.EntryFor(outcome.Record).Correct {
		lines = append(lines, missedlog.FormatChoice(choice))
	}
	return strings.Join(lines, "\n")
}

// renderScore renders the final score lines.
func renderScore(state State, noColor bool) string {
	score := quiz.Score{Correct: state.Correct, Answered: state.Answered}
	var b strings.Builder
	if err := quiz.WriteScore(&b, score); err != nil {
		return stylize("Aucune question répondue", noColor, colorDim)
	}
	return stylize(strings.TrimRight(b.String(), "\n"), noColor, colorHeader)
}

// renderHint renders a dim key hint.
func renderHint(text string, noColor bool) string {
	return stylize(text, noColor, colorDim)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
