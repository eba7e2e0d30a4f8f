package quiz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Rem7474/CCNA1/internal/bank"
	"github.com/Rem7474/CCNA1/internal/missedlog"
)

type recordingLogger struct {
	entries []missedlog.Entry
	err     error
}

func (l *recordingLogger) Append(entry missedlog.Entry) error {
	l.entries = append(l.entries, entry)
	return l.err
}

type recordingObserver struct {
	started     int
	answers     []Outcome
	ended       int
	interrupted bool
}

func (o *recordingObserver) OnSessionStart(*Session) { o.started++ }
func (o *recordingObserver) OnAnswer(outcome Outcome) {
	o.answers = append(o.answers, outcome)
}
func (o *recordingObserver) OnSessionEnd(_ *Session, interrupted bool) {
	o.ended++
	o.interrupted = interrupted
}

func singleQuestionSession(t *testing.T) *Session {
	t.Helper()
	b := bank.New("bank.csv", []bank.Record{{
		Question: "What is 2+2?",
		Choices:  []string{"3", "4", "5"},
		Correct:  []int{2},
	}})
	session, err := NewSession(b, Options{Seed: seed(1)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

// TestRunnerCorrectAnswer verifies the console flow for a correct answer.
func TestRunnerCorrectAnswer(t *testing.T) {
	var out bytes.Buffer
	logger := &recordingLogger{}
	observer := &recordingObserver{}
	runner := NewRunner(RunnerOptions{In: strings.NewReader("2\n"), Out: &out, Missed: logger, Observer: observer})

	score, err := runner.Run(context.Background(), singleQuestionSession(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Correct != 1 || score.Answered != 1 {
		t.Fatalf("unexpected score %+v", score)
	}
	if len(logger.entries) != 0 {
		t.Fatalf("expected no missed entries, got %+v", logger.entries)
	}
	want := "What is 2+2?\n\n" +
		"Réponse 1 : 3\nRéponse 2 : 4\nRéponse 3 : 5\n\n" +
		"Quelle est votre réponse ? " +
		"Bonne réponse\n\n" +
		"Score : 1 / 1\nPourcentage : 100.0 %\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
	if observer.started != 1 || observer.ended != 1 || len(observer.answers) != 1 || observer.interrupted {
		t.Fatalf("unexpected observer calls %+v", observer)
	}
}

// TestRunnerIncorrectAnswerLogsOnce verifies missed questions are shown and logged.
func TestRunnerIncorrectAnswerLogsOnce(t *testing.T) {
	var out bytes.Buffer
	logger := &recordingLogger{}
	runner := NewRunner(RunnerOptions{In: strings.NewReader("1\n"), Out: &out, Missed: logger})

	score, err := runner.Run(context.Background(), singleQuestionSession(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Correct != 0 || score.Answered != 1 {
		t.Fatalf("unexpected score %+v", score)
	}
	if len(logger.entries) != 1 {
		t.Fatalf("expected one missed entry, got %d", len(logger.entries))
	}
	entry := logger.entries[0]
	if entry.Question != "What is 2+2?" || len(entry.Correct) != 1 || entry.Correct[0].Text != "4" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	wantFeedback := "Mauvaise réponse\nLes bonnes réponses étaient : \nRéponse 2 : 4\n\n"
	if !strings.Contains(out.String(), wantFeedback) {
		t.Fatalf("expected feedback %q in %q", wantFeedback, out.String())
	}
	if !strings.HasSuffix(out.String(), "Score : 0 / 1\nPourcentage : 0.0 %\n") {
		t.Fatalf("unexpected score lines in %q", out.String())
	}
}

// TestRunnerEmptyAnswerIsIncorrect verifies pressing enter counts as "0".
func TestRunnerEmptyAnswerIsIncorrect(t *testing.T) {
	logger := &recordingLogger{}
	runner := NewRunner(RunnerOptions{In: strings.NewReader("\n"), Missed: logger})
	score, err := runner.Run(context.Background(), singleQuestionSession(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Correct != 0 || score.Answered != 1 || len(logger.entries) != 1 {
		t.Fatalf("expected one missed answer, got %+v with %d entries", score, len(logger.entries))
	}
}

// TestRunnerRepromptsOnInvalidInput verifies bad input does not end the session.
func TestRunnerRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	runner := NewRunner(RunnerOptions{In: strings.NewReader("two\n1,\n2\n"), Out: &out})
	score, err := runner.Run(context.Background(), singleQuestionSession(t))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Correct != 1 {
		t.Fatalf("expected the third attempt to score, got %+v", score)
	}
	if got := strings.Count(out.String(), "Réponse invalide : "); got != 2 {
		t.Fatalf("expected 2 invalid input messages, got %d in %q", got, out.String())
	}
	if got := strings.Count(out.String(), AnswerPrompt); got != 3 {
		t.Fatalf("expected 3 prompts, got %d", got)
	}
}

// TestRunnerContinuesWhenLogFails verifies log failures are warnings.
func TestRunnerContinuesWhenLogFails(t *testing.T) {
	var out, warn bytes.Buffer
	logger := &recordingLogger{err: errors.New("disk full")}
	session, err := NewSession(numberedBank(3), Options{Seed: seed(9)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	runner := NewRunner(RunnerOptions{In: strings.NewReader("2\n2\n2\n"), Out: &out, Warn: &warn, Missed: logger})
	score, err := runner.Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 3 {
		t.Fatalf("expected all 3 questions answered, got %+v", score)
	}
	if got := strings.Count(warn.String(), "disk full"); got != 3 {
		t.Fatalf("expected 3 warnings, got %d in %q", got, warn.String())
	}
}

// TestRunnerStopsAtCap verifies a large bank stops after 60 questions.
func TestRunnerStopsAtCap(t *testing.T) {
	session, err := NewSession(numberedBank(80), Options{Seed: seed(11)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	input := strings.Repeat("1\n", 80)
	var out bytes.Buffer
	score, err := NewRunner(RunnerOptions{In: strings.NewReader(input), Out: &out}).Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 60 || score.Correct != 60 {
		t.Fatalf("expected 60/60, got %+v", score)
	}
	if !strings.Contains(out.String(), "Score : 60 / 60") {
		t.Fatalf("expected final score in output")
	}
}

// TestRunnerExhaustsSmallBank verifies every question of a small bank is asked.
func TestRunnerExhaustsSmallBank(t *testing.T) {
	session, err := NewSession(numberedBank(5), Options{Seed: seed(5)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	input := "1\n1\n1\n2\n2\n"
	score, err := NewRunner(RunnerOptions{In: strings.NewReader(input)}).Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 5 || score.Correct != 3 {
		t.Fatalf("expected 3/5, got %+v", score)
	}
	percentage, _ := score.Percentage()
	if percentage != 60.0 {
		t.Fatalf("expected 60%%, got %v", percentage)
	}
}

// TestRunnerEndOfInputStopsEarly verifies EOF ends the session with a partial score.
func TestRunnerEndOfInputStopsEarly(t *testing.T) {
	session, err := NewSession(numberedBank(5), Options{Seed: seed(5)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	observer := &recordingObserver{}
	var out bytes.Buffer
	score, err := NewRunner(RunnerOptions{In: strings.NewReader("1\n1"), Out: &out, Observer: observer}).Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 2 {
		t.Fatalf("expected 2 answered, got %+v", score)
	}
	if !observer.interrupted {
		t.Fatalf("expected interrupted session")
	}
	if !strings.Contains(out.String(), "Score : 2 / 2") {
		t.Fatalf("expected partial score in %q", out.String())
	}
}

// TestRunnerNothingAnswered verifies an interrupted first question is an empty session.
func TestRunnerNothingAnswered(t *testing.T) {
	var out bytes.Buffer
	_, err := NewRunner(RunnerOptions{In: strings.NewReader(""), Out: &out}).Run(context.Background(), singleQuestionSession(t))
	if !errors.Is(err, ErrEmptyBank) {
		t.Fatalf("expected empty bank error, got %v", err)
	}
	if strings.Contains(out.String(), "Pourcentage") {
		t.Fatalf("expected no percentage line, got %q", out.String())
	}
}

// TestRunnerCancelledContext verifies cancellation stops waiting for input.
func TestRunnerCancelledContext(t *testing.T) {
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(RunnerOptions{In: reader}).Run(ctx, singleQuestionSession(t))
	if !errors.Is(err, ErrEmptyBank) {
		t.Fatalf("expected empty bank error, got %v", err)
	}
}

// TestRunnerAnswerTimeout verifies unanswered questions are missed after the timeout.
func TestRunnerAnswerTimeout(t *testing.T) {
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })
	session, err := NewSession(numberedBank(2), Options{Seed: seed(2)})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	logger := &recordingLogger{}
	var out bytes.Buffer
	runner := NewRunner(RunnerOptions{In: reader, Out: &out, Missed: logger, AnswerTimeout: 10 * time.Millisecond})
	score, err := runner.Run(context.Background(), session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 2 || score.Correct != 0 {
		t.Fatalf("expected 0/2, got %+v", score)
	}
	if len(logger.entries) != 2 {
		t.Fatalf("expected 2 missed entries, got %d", len(logger.entries))
	}
	if got := strings.Count(out.String(), MsgTimeout); got != 2 {
		t.Fatalf("expected 2 timeout messages, got %d", got)
	}
	for _, outcome := range session.Outcomes() {
		if !outcome.TimedOut {
			t.Fatalf("expected timed out outcome, got %+v", outcome)
		}
	}
}

// TestRunnerInvalidInputKeepsDeadline verifies re-prompts do not restart the
// answer timeout.
func TestRunnerInvalidInputKeepsDeadline(t *testing.T) {
	reader, writer := io.Pipe()
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if _, err := writer.Write([]byte("x\n")); err != nil {
					return
				}
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		_ = writer.Close()
		_ = reader.Close()
	})

	session := singleQuestionSession(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var out bytes.Buffer
	runner := NewRunner(RunnerOptions{In: reader, Out: &out, AnswerTimeout: 100 * time.Millisecond})
	score, err := runner.Run(ctx, session)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if score.Answered != 1 || score.Correct != 0 {
		t.Fatalf("expected 0/1, got %+v", score)
	}
	if !session.Outcomes()[0].TimedOut {
		t.Fatalf("expected timed out outcome, got %+v", session.Outcomes()[0])
	}
	if !strings.Contains(out.String(), MsgInvalid) {
		t.Fatalf("expected invalid input message, got %q", out.String())
	}
}

// ExampleFormatPercentage shows the score formatting.
func ExampleFormatPercentage() {
	fmt.Println(FormatPercentage(60))
	fmt.Println(FormatPercentage(200.0 / 3))
	// Output:
	// 60.0
	// 66.7
}
