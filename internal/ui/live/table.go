package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const questionColumnMin = 20

// defaultColumns returns the review table layout for an 80 column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// questionColumnWidth gives the question column whatever width is left.
func questionColumnWidth(width int) int {
	fixed := 4 + 10 + 10 + 13 + 5*2
	return max(width-fixed, questionColumnMin)
}

// columnsForWidth lays out the review table for a terminal width.
func columnsForWidth(width int) []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: questionColumnWidth(width)},
		{Title: "Réponse", Width: 10},
		{Title: "Attendu", Width: 10},
		{Title: "Résultat", Width: 13},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts answered questions into table rows.
func rowsForState(state State, questionWidth int) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuestionText(row.Question, questionWidth),
			formatPositions(row.Response),
			formatPositions(row.Expected),
			formatVerdict(row),
		})
	}
	return rows
}
