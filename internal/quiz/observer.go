package quiz

// Observer receives session lifecycle events for results, history or
// logging subscribers.
type Observer interface {
	// OnSessionStart signals the first question is about to be asked.
	OnSessionStart(session *Session)
	// OnAnswer delivers each scored question.
	OnAnswer(outcome Outcome)
	// OnSessionEnd signals the session stopped, completed or interrupted.
	OnSessionEnd(session *Session, interrupted bool)
}

// Observers fans events out to several observers in order.
type Observers []Observer

// OnSessionStart forwards to every observer.
func (o Observers) OnSessionStart(session *Session) {
	for _, observer := range o {
		if observer != nil {
			observer.OnSessionStart(session)
		}
	}
}

// OnAnswer forwards to every observer.
func (o Observers) OnAnswer(outcome Outcome) {
	for _, observer := range o {
		if observer != nil {
			observer.OnAnswer(outcome)
		}
	}
}

// OnSessionEnd forwards to every observer.
func (o Observers) OnSessionEnd(session *Session, interrupted bool) {
	for _, observer := range o {
		if observer != nil {
			observer.OnSessionEnd(session, interrupted)
		}
	}
}
