package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Rem7474/CCNA1/internal/bank"
)

// DefaultMaxQuestions caps a session when no limit is configured.
const DefaultMaxQuestions = 60

// ErrEmptyBank is returned when there is nothing to ask or nothing answered.
var ErrEmptyBank = bank.ErrEmptyBank

// ErrSessionDone is returned when answering after the last question.
var ErrSessionDone = errors.New("quiz session already finished")

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a session.
type Options struct {
	// MaxQuestions caps the number of questions asked; <= 0 means 60.
	MaxQuestions int
	// Seed makes the question order reproducible when set.
	Seed  *uint64
	Clock Clock
}

// Outcome is the scored result of one question.
type Outcome struct {
	Index      int
	Record     bank.Record
	Response   []int
	Correct    bool
	TimedOut   bool
	AnsweredAt time.Time
}

// Score is the running tally of a session.
type Score struct {
	Correct  int
	Answered int
}

// Percentage returns correct/answered*100, or ErrEmptyBank when nothing was
// answered.
func (s Score) Percentage() (float64, error) {
	if s.Answered == 0 {
		return 0, fmt.Errorf("no questions answered: %w", ErrEmptyBank)
	}
	return float64(s.Correct*100) / float64(s.Answered), nil
}

// Session walks a shuffled view of a bank and scores responses.
type Session struct {
	order     []bank.Record
	max       int
	seed      uint64
	clock     Clock
	startedAt time.Time
	next      int
	score     Score
	outcomes  []Outcome
}

// NewSession shuffles the bank and prepares a session over it.
func NewSession(b *bank.Bank, opts Options) (*Session, error) {
	if b.Len() == 0 {
		return nil, ErrEmptyBank
	}
	limit := opts.MaxQuestions
	if limit <= 0 {
		limit = DefaultMaxQuestions
	}
	seed := rand.Uint64()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}

	records := b.Records()
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	return &Session{
		order:     records,
		max:       limit,
		seed:      seed,
		clock:     clock,
		startedAt: clock.Now(),
	}, nil
}

// Seed returns the seed used to shuffle the bank.
func (s *Session) Seed() uint64 {
	return s.seed
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// MaxQuestions returns the configured question cap.
func (s *Session) MaxQuestions() int {
	return s.max
}

// Total returns how many questions the session will ask if not interrupted.
func (s *Session) Total() int {
	return min(len(s.order), s.max)
}

// Order returns the shuffled records.
func (s *Session) Order() []bank.Record {
	out := make([]bank.Record, len(s.order))
	copy(out, s.order)
	return out
}

// Done reports whether the cap or the end of the bank has been reached.
func (s *Session) Done() bool {
	return s.score.Answered >= s.max || s.next >= len(s.order)
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (bank.Record, bool) {
	if s.Done() {
		return bank.Record{}, false
	}
	return s.order[s.next], true
}

// Submit scores a raw response for the current question. Unparseable input
// returns *InvalidInputError and leaves the session unchanged.
func (s *Session) Submit(input string) (Outcome, error) {
	if s.Done() {
		return Outcome{}, ErrSessionDone
	}
	response, err := ParseAnswer(input)
	if err != nil {
		return Outcome{}, err
	}
	record := s.order[s.next]
	return s.record(Outcome{
		Record:   record,
		Response: response,
		Correct:  samePositions(response, record.Correct),
	}), nil
}

// Timeout records the current question as unanswered, which scores it as
// incorrect.
func (s *Session) Timeout() (Outcome, error) {
	if s.Done() {
		return Outcome{}, ErrSessionDone
	}
	return s.record(Outcome{
		Record:   s.order[s.next],
		Response: []int{0},
		TimedOut: true,
	}), nil
}

func (s *Session) record(outcome Outcome) Outcome {
	outcome.Index = s.score.Answered
	outcome.AnsweredAt = s.clock.Now()
	s.score.Answered++
	if outcome.Correct {
		s.score.Correct++
	}
	s.next++
	s.outcomes = append(s.outcomes, outcome)
	return outcome
}

// Score returns the current tally.
func (s *Session) Score() Score {
	return s.score
}

// Outcomes returns every scored question in order.
func (s *Session) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}
