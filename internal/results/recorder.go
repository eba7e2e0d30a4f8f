package results

import (
	"time"

	"github.com/Rem7474/CCNA1/internal/quiz"
)

// Recorder is a quiz.Observer that builds the results document when the
// session ends.
type Recorder struct {
	sessionID string
	bankPath  string
	now       func() time.Time
	result    *Session
}

// NewRecorder returns a recorder for one session.
func NewRecorder(sessionID, bankPath string, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{sessionID: sessionID, bankPath: bankPath, now: now}
}

// OnSessionStart implements quiz.Observer.
func (r *Recorder) OnSessionStart(*quiz.Session) {}

// OnAnswer implements quiz.Observer.
func (r *Recorder) OnAnswer(quiz.Outcome) {}

// OnSessionEnd captures the final document.
func (r *Recorder) OnSessionEnd(session *quiz.Session, interrupted bool) {
	result := Build(r.sessionID, r.bankPath, session, r.now(), interrupted)
	r.result = &result
}

// Result returns the captured document once the session has ended.
func (r *Recorder) Result() (Session, bool) {
	if r.result == nil {
		return Session{}, false
	}
	return *r.result, true
}
