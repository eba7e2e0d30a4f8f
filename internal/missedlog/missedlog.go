// Package missedlog appends missed questions and their correct answers to a
// plain text review file.
package missedlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rem7474/CCNA1/internal/bank"
)

// DefaultPath is the review file used when none is configured.
const DefaultPath = "erreurs.txt"

// Choice is one correct answer of a missed question.
type Choice struct {
	Position int
	Text     string
}

// Entry is a missed question with every correct choice.
type Entry struct {
	Question string
	Correct  []Choice
}

// EntryFor builds the entry for a record.
func EntryFor(record bank.Record) Entry {
	entry := Entry{Question: record.Question}
	for _, position := range record.Correct {
		text, _ := record.ChoiceText(position)
		entry.Correct = append(entry.Correct, Choice{Position: position, Text: text})
	}
	return entry
}

// FormatChoice renders one correct answer line without a trailing newline.
func FormatChoice(choice Choice) string {
	return fmt.Sprintf("Réponse %d : %s", choice.Position, choice.Text)
}

// Format renders an entry as a block terminated by a blank line.
func Format(entry Entry) string {
	var builder strings.Builder
	builder.WriteString(entry.Question)
	builder.WriteString("\n")
	for _, choice := range entry.Correct {
		builder.WriteString(FormatChoice(choice))
		builder.WriteString("\n")
	}
	builder.WriteString("\n")
	return builder.String()
}

// Logger appends entries to a file, opening and closing it per entry.
type Logger struct {
	path string
}

// New returns a logger for path, or DefaultPath when path is empty.
func New(path string) *Logger {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	return &Logger{path: path}
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Append writes one entry at the end of the file, creating it if needed.
func (l *Logger) Append(entry Entry) (err error) {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create missed log dir: %w", err)
		}
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open missed log: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close missed log: %w", closeErr)
		}
	}()
	if _, err := file.WriteString(Format(entry)); err != nil {
		return fmt.Errorf("write missed log: %w", err)
	}
	return nil
}
