package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rem7474/CCNA1/internal/testutil"
)

const testSessionID = "20240101T000000Z-000000000000"

// isolate runs the test in a fresh directory with no process environment,
// a non-TTY console, and a fixed session id.
func isolate(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	testutil.Chdir(t, dir)

	origEnviron, origTerminal, origID, origInput, origInit := environ, isTerminal, newSessionID, runInput, initInput
	environ = func(string) (string, bool) { return "", false }
	isTerminal = func(any) bool { return false }
	newSessionID = func() (string, error) { return testSessionID, nil }
	t.Cleanup(func() {
		environ, isTerminal, newSessionID, runInput, initInput = origEnviron, origTerminal, origID, origInput, origInit
	})
	return dir
}

// answers feeds the given lines to the run command.
func answers(lines ...string) {
	runInput = strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// runCLI executes the CLI and captures both streams.
func runCLI(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// singleQuestionBank writes a one question bank whose answer is 2.
func singleQuestionBank(t *testing.T, dir string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, "ExamCiscoCSV.csv",
		testutil.Bank("Quelle couche route les paquets ?;3;1;Liaison;Réseau;Transport;2"))
}

