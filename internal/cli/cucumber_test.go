//go:build cucumber

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/Rem7474/CCNA1/internal/config"
)

// TestQuizSessionScenarios runs the quiz session feature scenarios.
func TestQuizSessionScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("testdata", "features")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz session scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.setup()
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		state.teardown()
		return ctx, err
	})

	ctx.Step(`^a bank with lines:$`, state.givenBankWithLines)
	ctx.Step(`^a bank of (\d+) questions answered by "([^"]*)"$`, state.givenGeneratedBank)
	ctx.Step(`^the learner answers "([^"]*)"$`, state.givenAnswer)
	ctx.Step(`^the learner answers "([^"]*)" (\d+) times$`, state.givenRepeatedAnswer)
	ctx.Step(`^I run "([^"]*)"$`, state.whenIRun)
	ctx.Step(`^the exit code is (\d+)$`, state.thenExitCode)
	ctx.Step(`^stdout contains "([^"]*)"$`, state.thenStdoutContains)
	ctx.Step(`^stderr contains "([^"]*)"$`, state.thenStderrContains)
	ctx.Step(`^the missed log is empty$`, state.thenMissedLogEmpty)
	ctx.Step(`^the missed log contains "([^"]*)"$`, state.thenMissedLogContains)
}

// quizScenarioState holds one scenario's workspace and captured output.
type quizScenarioState struct {
	dir     string
	prevDir string
	answers []string
	code    int
	stdout  string
	stderr  string
	restore func()
}

func (s *quizScenarioState) setup() error {
	dir, err := os.MkdirTemp("", "ccnaquiz-feature-*")
	if err != nil {
		return err
	}
	if dir, err = filepath.EvalSymlinks(dir); err != nil {
		return err
	}
	prev, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	*s = quizScenarioState{dir: dir, prevDir: prev}

	origEnviron, origTerminal, origID, origInput := environ, isTerminal, newSessionID, runInput
	environ = func(string) (string, bool) { return "", false }
	isTerminal = func(any) bool { return false }
	newSessionID = func() (string, error) { return "20240101T000000Z-000000000000", nil }
	s.restore = func() {
		environ, isTerminal, newSessionID, runInput = origEnviron, origTerminal, origID, origInput
	}
	return nil
}

func (s *quizScenarioState) teardown() {
	if s.restore != nil {
		s.restore()
	}
	if s.prevDir != "" {
		_ = os.Chdir(s.prevDir)
	}
	if s.dir != "" {
		_ = os.RemoveAll(s.dir)
	}
}

func (s *quizScenarioState) writeBank(body string) error {
	return os.WriteFile(filepath.Join(s.dir, config.DefaultBank), []byte(body), 0o644)
}

func (s *quizScenarioState) givenBankWithLines(doc *godog.DocString) error {
	return s.writeBank(doc.Content + "\n")
}

func (s *quizScenarioState) givenGeneratedBank(count int, answer string) error {
	var body strings.Builder
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&body, "Question %d;2;1;a;b;%s\n", i, answer)
	}
	return s.writeBank(body.String())
}

func (s *quizScenarioState) givenAnswer(answer string) error {
	s.answers = append(s.answers, answer)
	return nil
}

func (s *quizScenarioState) givenRepeatedAnswer(answer string, times int) error {
	for i := 0; i < times; i++ {
		s.answers = append(s.answers, answer)
	}
	return nil
}

func (s *quizScenarioState) whenIRun(command string) error {
	runInput = strings.NewReader(strings.Join(s.answers, "\n") + "\n")
	var out, errOut bytes.Buffer
	s.code = Run(strings.Fields(command), &out, &errOut)
	s.stdout = out.String()
	s.stderr = errOut.String()
	return nil
}

func (s *quizScenarioState) thenExitCode(expected string) error {
	want, err := strconv.Atoi(expected)
	if err != nil {
		return err
	}
	if s.code != want {
		return fmt.Errorf("expected exit code %d, got %d (stderr %q)", want, s.code, s.stderr)
	}
	return nil
}

func (s *quizScenarioState) thenStdoutContains(text string) error {
	if !strings.Contains(s.stdout, text) {
		return fmt.Errorf("stdout missing %q:\n%s", text, s.stdout)
	}
	return nil
}

func (s *quizScenarioState) thenStderrContains(text string) error {
	if !strings.Contains(s.stderr, text) {
		return fmt.Errorf("stderr missing %q:\n%s", text, s.stderr)
	}
	return nil
}

func (s *quizScenarioState) readMissedLog() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, config.DefaultMissedLog))
	if os.IsNotExist(err) {
		return "", nil
	}
	return string(data), err
}

func (s *quizScenarioState) thenMissedLogEmpty() error {
	content, err := s.readMissedLog()
	if err != nil {
		return err
	}
	if content != "" {
		return fmt.Errorf("expected empty missed log, got %q", content)
	}
	return nil
}

func (s *quizScenarioState) thenMissedLogContains(text string) error {
	content, err := s.readMissedLog()
	if err != nil {
		return err
	}
	if !strings.Contains(content, text) {
		return fmt.Errorf("missed log missing %q:\n%s", text, content)
	}
	return nil
}
