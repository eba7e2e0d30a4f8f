package quiz

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rem7474/CCNA1/internal/missedlog"
)

// Console text shared by the plain and live front ends.
const (
	AnswerPrompt   = "Quelle est votre réponse ? "
	MsgCorrect     = "Bonne réponse"
	MsgIncorrect   = "Mauvaise réponse"
	MsgCorrectList = "Les bonnes réponses étaient : "
	MsgTimeout     = "Temps écoulé"
	MsgInvalid     = "Réponse invalide : "
)

// MissedLogger records questions answered incorrectly.
type MissedLogger interface {
	Append(entry missedlog.Entry) error
}

// RunnerOptions configures the plain console runner.
type RunnerOptions struct {
	In  io.Reader
	Out io.Writer
	// Warn receives non-fatal problems such as missed log failures.
	Warn     io.Writer
	Missed   MissedLogger
	Observer Observer
	// AnswerTimeout scores a question as missed when no answer arrives in
	// time. Zero waits forever.
	AnswerTimeout time.Duration
}

// Runner drives a session over line based console I/O.
type Runner struct {
	opts RunnerOptions
}

// NewRunner returns a runner with defaults filled in.
func NewRunner(opts RunnerOptions) *Runner {
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Warn == nil {
		opts.Warn = opts.Out
	}
	if opts.Observer == nil {
		opts.Observer = Observers(nil)
	}
	return &Runner{opts: opts}
}

type inputLine struct {
	text string
	err  error
}

// Run asks questions until the session is done, input ends, or ctx is
// cancelled, then prints the score. It returns ErrEmptyBank when no question
// was answered.
func (r *Runner) Run(ctx context.Context, session *Session) (Score, error) {
	done := make(chan struct{})
	defer close(done)
	lines := readLines(r.opts.In, done)

	r.opts.Observer.OnSessionStart(session)
	interrupted := false
	for {
		record, ok := session.Current()
		if !ok {
			break
		}
		r.printQuestion(record.Question, record.Choices)
		outcome, stop, err := r.ask(ctx, session, lines)
		if err != nil {
			r.opts.Observer.OnSessionEnd(session, true)
			return session.Score(), err
		}
		if stop {
			interrupted = true
			break
		}
		r.report(outcome)
	}
	r.opts.Observer.OnSessionEnd(session, interrupted)

	score := session.Score()
	if err := WriteScore(r.opts.Out, score); err != nil {
		return score, err
	}
	return score, nil
}

// ask reads until one valid answer is scored. stop is true when input ended
// or ctx was cancelled before an answer arrived.
func (r *Runner) ask(ctx context.Context, session *Session, lines <-chan inputLine) (Outcome, bool, error) {
	out := r.opts.Out
	var timeout <-chan time.Time
	if r.opts.AnswerTimeout > 0 {
		timer := time.NewTimer(r.opts.AnswerTimeout)
		defer timer.Stop()
		timeout = timer.C
	}
	for {
		fmt.Fprint(out, AnswerPrompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return Outcome{}, true, nil
		case <-timeout:
			fmt.Fprintln(out)
			fmt.Fprintln(out, MsgTimeout)
			outcome, err := session.Timeout()
			return outcome, false, err
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return Outcome{}, true, nil
			}
			if line.err != nil {
				return Outcome{}, false, fmt.Errorf("read answer: %w", line.err)
			}
			outcome, err := session.Submit(line.text)
			var invalid *InvalidInputError
			if errors.As(err, &invalid) {
				fmt.Fprintln(out, MsgInvalid+invalid.Reason)
				continue
			}
			return outcome, false, err
		}
	}
}

func (r *Runner) printQuestion(question string, choices []string) {
	out := r.opts.Out
	fmt.Fprintln(out, question)
	fmt.Fprintln(out)
	for i, choice := range choices {
		fmt.Fprintf(out, "Réponse %d : %s\n", i+1, choice)
	}
	fmt.Fprintln(out)
}

func (r *Runner) report(outcome Outcome) {
	out := r.opts.Out
	r.opts.Observer.OnAnswer(outcome)
	if outcome.Correct {
		fmt.Fprintln(out, MsgCorrect)
		fmt.Fprintln(out)
		return
	}
	entry := missedlog.EntryFor(outcome.Record)
	fmt.Fprintln(out, MsgIncorrect)
	fmt.Fprintln(out, MsgCorrectList)
	for _, choice := range entry.Correct {
		fmt.Fprintln(out, missedlog.FormatChoice(choice))
	}
	fmt.Fprintln(out)
	if r.opts.Missed == nil {
		return
	}
	if err := r.opts.Missed.Append(entry); err != nil {
		fmt.Fprintln(r.opts.Warn, MissedLogWarning(err))
	}
}

// WriteScore prints the final score and percentage. It returns ErrEmptyBank
// and prints nothing when no question was answered.
func WriteScore(w io.Writer, score Score) error {
	percentage, err := score.Percentage()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Score : %d / %d\n", score.Correct, score.Answered)
	fmt.Fprintf(w, "Pourcentage : %s %%\n", FormatPercentage(percentage))
	return nil
}

// MissedLogWarning is the warning shown when a missed question could not be
// appended to the log.
func MissedLogWarning(err error) string {
	return fmt.Sprintf("warning: missed question not logged: %v", err)
}

// FormatPercentage renders a percentage with one decimal.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

// readLines feeds input lines to a channel until EOF, an error, or done.
func readLines(in io.Reader, done <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			text, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				send(lines, done, inputLine{err: err})
				return
			}
			if text != "" || err == nil {
				if !send(lines, done, inputLine{text: strings.TrimRight(text, "\r\n")}) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func send(lines chan<- inputLine, done <-chan struct{}, line inputLine) bool {
	select {
	case lines <- line:
		return true
	case <-done:
		return false
	}
}
