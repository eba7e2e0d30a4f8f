package results

import (
	"time"

	"github.com/Rem7474/CCNA1/internal/quiz"
)

// Answer records one scored question.
type Answer struct {
	Index            int       `json:"index"`
	Question         string    `json:"question"`
	Choices          []string  `json:"choices"`
	Response         []int     `json:"response"`
	CorrectPositions []int     `json:"correct_positions"`
	Correct          bool      `json:"correct"`
	TimedOut         bool      `json:"timed_out,omitempty"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// Summary aggregates a session's score.
type Summary struct {
	Answered   int     `json:"answered"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Percentage float64 `json:"percentage"`
}

// Session is the results document written after a quiz.
type Session struct {
	SessionID    string    `json:"session_id"`
	BankPath     string    `json:"bank_path"`
	Seed         uint64    `json:"seed"`
	MaxQuestions int       `json:"max_questions"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Interrupted  bool      `json:"interrupted"`
	Answers      []Answer  `json:"answers"`
	Summary      Summary   `json:"summary"`
}

// Build converts a finished quiz session into a results document.
func Build(sessionID, bankPath string, session *quiz.Session, finishedAt time.Time, interrupted bool) Session {
	out := Session{
		SessionID:    sessionID,
		BankPath:     bankPath,
		Seed:         session.Seed(),
		MaxQuestions: session.MaxQuestions(),
		StartedAt:    session.StartedAt().UTC(),
		FinishedAt:   finishedAt.UTC(),
		Interrupted:  interrupted,
		Answers:      []Answer{},
	}
	for _, outcome := range session.Outcomes() {
		out.Answers = append(out.Answers, AnswerFromOutcome(outcome))
	}
	score := session.Score()
	out.Summary = Summary{
		Answered:  score.Answered,
		Correct:   score.Correct,
		Incorrect: score.Answered - score.Correct,
	}
	if percentage, err := score.Percentage(); err == nil {
		out.Summary.Percentage = percentage
	}
	return out
}

// AnswerFromOutcome converts one scored question.
func AnswerFromOutcome(outcome quiz.Outcome) Answer {
	return Answer{
		Index:            outcome.Index,
		Question:         outcome.Record.Question,
		Choices:          append([]string(nil), outcome.Record.Choices...),
		Response:         append([]int(nil), outcome.Response...),
		CorrectPositions: append([]int(nil), outcome.Record.Correct...),
		Correct:          outcome.Correct,
		TimedOut:         outcome.TimedOut,
		AnsweredAt:       outcome.AnsweredAt.UTC(),
	}
}
