package missedlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rem7474/CCNA1/internal/bank"
)

// TestEntryForUsesChoicePositions verifies correct texts are looked up 1-based.
func TestEntryForUsesChoicePositions(t *testing.T) {
	record := bank.Record{
		Question: "Which are private ranges?",
		Choices:  []string{"10.0.0.0/8", "8.8.8.0/24", "192.168.0.0/16"},
		Correct:  []int{1, 3},
	}
	entry := EntryFor(record)
	if len(entry.Correct) != 2 {
		t.Fatalf("expected 2 correct choices, got %d", len(entry.Correct))
	}
	if entry.Correct[0].Text != "10.0.0.0/8" || entry.Correct[1].Text != "192.168.0.0/16" {
		t.Fatalf("unexpected choices %+v", entry.Correct)
	}
}

// TestFormatBlock verifies the block layout.
func TestFormatBlock(t *testing.T) {
	entry := Entry{Question: "Q?", Correct: []Choice{{Position: 2, Text: "b"}, {Position: 4, Text: "d"}}}
	want := "Q?\nRéponse 2 : b\nRéponse 4 : d\n\n"
	if got := Format(entry); got != want {
		t.Fatalf("unexpected block:\n%q\nwant\n%q", got, want)
	}
}

// TestAppendCreatesAndAppends verifies the file is created and never truncated.
func TestAppendCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erreurs.txt")
	if err := os.WriteFile(path, []byte("earlier\n\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}
	logger := New(path)
	first := Entry{Question: "Q1", Correct: []Choice{{Position: 1, Text: "a"}}}
	second := Entry{Question: "Q2", Correct: []Choice{{Position: 2, Text: "b"}}}
	if err := logger.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := logger.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := "earlier\n\n" + Format(first) + Format(second)
	if string(data) != want {
		t.Fatalf("unexpected log:\n%q\nwant\n%q", string(data), want)
	}
}

// TestAppendCreatesParentDirs verifies a log in a new directory is created.
func TestAppendCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "missed.txt")
	entry := Entry{Question: "Q", Correct: []Choice{{Position: 1, Text: "a"}}}
	if err := New(path).Append(entry); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(data) != Format(entry) {
		t.Fatalf("unexpected log %q", string(data))
	}
}

// TestAppendReportsOpenFailure verifies unwritable paths return an error.
func TestAppendReportsOpenFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	logger := New(filepath.Join(blocker, "erreurs.txt"))
	if err := logger.Append(Entry{Question: "Q"}); err == nil {
		t.Fatalf("expected error")
	}
}

// TestNewDefaultsPath verifies the default review file.
func TestNewDefaultsPath(t *testing.T) {
	if got := New("  ").Path(); got != DefaultPath {
		t.Fatalf("expected %q, got %q", DefaultPath, got)
	}
}
