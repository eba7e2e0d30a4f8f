package live

// phase is the screen the model is showing.
type phase int

const (
	phaseAsking phase = iota
	phaseFeedback
	phaseFinished
)

// ReviewRow summarizes one answered question for the end-of-session table.
type ReviewRow struct {
	Index    int
	Question string
	Response []int
	Expected []int
	Correct  bool
	TimedOut bool
}

// State captures the running tally shown by the live UI.
type State struct {
	Answered int
	Correct  int
	Rows     []ReviewRow
}
