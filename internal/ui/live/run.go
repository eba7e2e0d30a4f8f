package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rem7474/CCNA1/internal/quiz"
)

// RunOptions configures a live session.
type RunOptions struct {
	Options
	In  io.Reader
	Out io.Writer
	// Warn receives warnings once the UI has exited.
	Warn io.Writer
	// AltScreen uses the terminal's alternate screen.
	AltScreen bool
}

// newProgram is a test seam for the Bubble Tea program.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) interface {
	Run() (tea.Model, error)
} {
	return tea.NewProgram(model, opts...)
}

// Run drives session through the live UI, then prints the score the same way
// the plain runner does. It returns ErrEmptyBank when nothing was answered.
func Run(ctx context.Context, session *quiz.Session, opts RunOptions) (quiz.Score, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Warn == nil {
		opts.Warn = opts.Out
	}
	observer := opts.Observer
	if observer == nil {
		observer = quiz.Observers(nil)
	}
	opts.Observer = observer

	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(opts.Out)}
	if opts.In != nil {
		programOpts = append(programOpts, tea.WithInput(opts.In))
	}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	observer.OnSessionStart(session)
	final, err := newProgram(NewModel(session, opts.Options), programOpts...).Run()
	interrupted := false
	if err != nil {
		if !errors.Is(err, tea.ErrProgramKilled) {
			observer.OnSessionEnd(session, true)
			return session.Score(), fmt.Errorf("live ui: %w", err)
		}
		interrupted = true
	}
	if model, ok := final.(Model); ok {
		interrupted = interrupted || model.Interrupted()
		for _, warning := range model.Warnings() {
			fmt.Fprintln(opts.Warn, warning)
		}
	}
	observer.OnSessionEnd(session, interrupted)

	score := session.Score()
	if err := quiz.WriteScore(opts.Out, score); err != nil {
		return score, err
	}
	return score, nil
}
