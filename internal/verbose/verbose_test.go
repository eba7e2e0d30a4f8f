package verbose

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Rem7474/CCNA1/internal/bank"
	"github.com/Rem7474/CCNA1/internal/quiz"
)

// fakeTTY simulates a terminal writer for styling tests.
type fakeTTY struct {
	bytes.Buffer
}

// Fd returns a dummy file descriptor for fakeTTY.
func (t *fakeTTY) Fd() uintptr {
	return uintptr(1)
}

func forceTerminal(t *testing.T) {
	t.Helper()
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "1")
	orig := isTerminal
	isTerminal = func(_ int) bool { return true }
	t.Cleanup(func() { isTerminal = orig })
}

// TestLoggerNilIsSilent verifies a nil or disabled logger writes nothing.
func TestLoggerNilIsSilent(t *testing.T) {
	var logger *Logger
	logger.Printf("hello")
	logger.Block("header", "body")
	if logger.Active() {
		t.Fatalf("expected nil logger to be inactive")
	}

	var out bytes.Buffer
	disabled := New(Options{Console: &out})
	disabled.Printf("hello")
	if out.Len() != 0 {
		t.Fatalf("expected no output when disabled, got %q", out.String())
	}
}

// TestLoggerPrefixesLines verifies plain output carries the verbose prefix.
func TestLoggerPrefixesLines(t *testing.T) {
	var out bytes.Buffer
	logger := New(Options{Enabled: true, Console: &out})
	logger.Printf("loaded %d questions", 3)
	logger.Block("bank", "line one\nline two\n")

	want := "[verbose] loaded 3 questions\n" +
		"[verbose] bank\n" +
		"[verbose] line one\n" +
		"[verbose] line two\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

// TestLoggerNoColorDisablesStyling verifies no-color disables ANSI styling.
func TestLoggerNoColorDisablesStyling(t *testing.T) {
	forceTerminal(t)

	tty := &fakeTTY{}
	New(Options{Enabled: true, Console: tty, NoColor: true}).Styled(StyleHeading, "hello")
	if strings.Contains(tty.String(), "\x1b[") {
		t.Fatalf("expected no ANSI codes when no-color is set, got %q", tty.String())
	}

	tty.Reset()
	New(Options{Enabled: true, Console: tty}).Styled(StyleHeading, "hello")
	if !strings.Contains(tty.String(), "\x1b[") {
		t.Fatalf("expected ANSI codes when styling is enabled, got %q", tty.String())
	}
}

// TestLoggerFileIsPlain verifies the log file never receives ANSI codes and
// is written even when console output is disabled.
func TestLoggerFileIsPlain(t *testing.T) {
	forceTerminal(t)

	var file bytes.Buffer
	New(Options{Console: &fakeTTY{}, File: &file}).Styled(StyleFailure, "missed")
	if file.String() != "[verbose] missed\n" {
		t.Fatalf("unexpected file output %q", file.String())
	}
}

// TestSessionObserverLogsProgress verifies each session event is logged.
func TestSessionObserverLogsProgress(t *testing.T) {
	b := bank.New("bank.csv", []bank.Record{
		{Question: "Q1", Choices: []string{"a", "b"}, Correct: []int{2}, Line: 4},
	})
	seed := uint64(1)
	session, err := quiz.NewSession(b, quiz.Options{Seed: &seed})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	var out bytes.Buffer
	observer := SessionObserver{Logger: New(Options{Enabled: true, Console: &out})}
	observer.OnSessionStart(session)
	outcome, err := session.Submit("1,2")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	observer.OnAnswer(outcome)
	observer.OnSessionEnd(session, false)

	got := out.String()
	for _, want := range []string{
		"[verbose] session start: 1 questions (max 60), seed 1\n",
		"[verbose] question 1 (line 4) incorrect: answered 1,2, expected 2\n",
		"[verbose] session end: 0/1 correct, interrupted=false\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}
