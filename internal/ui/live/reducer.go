package live

import "github.com/Rem7474/CCNA1/internal/quiz"

// Reduce folds one scored question into the UI state.
func Reduce(state State, outcome quiz.Outcome) State {
	state.Answered++
	if outcome.Correct {
		state.Correct++
	}
	rows := make([]ReviewRow, len(state.Rows), len(state.Rows)+1)
	copy(rows, state.Rows)
	state.Rows = append(rows, ReviewRow{
		Index:    outcome.Index,
		Question: outcome.Record.Question,
		Response: append([]int(nil), outcome.Response...),
		Expected: append([]int(nil), outcome.Record.Correct...),
		Correct:  outcome.Correct,
		TimedOut: outcome.TimedOut,
	})
	return state
}

// Missed returns only the incorrectly answered rows.
func (s State) Missed() []ReviewRow {
	var out []ReviewRow
	for _, row := range s.Rows {
		if !row.Correct {
			out = append(out, row)
		}
	}
	return out
}
