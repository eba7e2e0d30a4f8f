package verbose

import (
	"strconv"
	"strings"

	"github.com/Rem7474/CCNA1/internal/quiz"
)

// SessionObserver logs quiz progress through a Logger.
type SessionObserver struct {
	Logger *Logger
}

// OnSessionStart logs the session parameters.
func (o SessionObserver) OnSessionStart(session *quiz.Session) {
	o.Logger.Styled(StyleHeading, "session start: %d questions (max %d), seed %d",
		session.Total(), session.MaxQuestions(), session.Seed())
}

// OnAnswer logs one scored question.
func (o SessionObserver) OnAnswer(outcome quiz.Outcome) {
	style := StyleFailure
	verdict := "incorrect"
	if outcome.Correct {
		style = StyleSuccess
		verdict = "correct"
	}
	if outcome.TimedOut {
		verdict = "timed out"
	}
	o.Logger.Styled(style, "question %d (line %d) %s: answered %s, expected %s",
		outcome.Index+1, outcome.Record.Line, verdict,
		joinPositions(outcome.Response), joinPositions(outcome.Record.Correct))
}

// OnSessionEnd logs the final tally.
func (o SessionObserver) OnSessionEnd(session *quiz.Session, interrupted bool) {
	score := session.Score()
	o.Logger.Styled(StyleHeading, "session end: %d/%d correct, interrupted=%t",
		score.Correct, score.Answered, interrupted)
}

func joinPositions(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
