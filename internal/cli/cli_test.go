package cli

import (
	"bytes"
	"strings"
	"testing"
)

// TestRootHelpListsCommands verifies the root usage names every quiz command.
func TestRootHelpListsCommands(t *testing.T) {
	code, out, errOut := runCLI("help")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if errOut != "" {
		t.Fatalf("expected no stderr output, got %q", errOut)
	}
	if !strings.HasPrefix(out, "Usage:\n  ccnaquiz <command> [options]\n") {
		t.Fatalf("unexpected usage header %q", out)
	}
	for _, want := range []string{
		"run       Run a quiz session",
		"validate  Check a question bank",
		"init      Scaffold .ccnaquiz/config.yml",
		"export    Convert a question bank",
		"stats     Show most missed questions and past scores",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in usage:\n%s", want, out)
		}
	}
}

// TestCommandOrder verifies run stays the first listed command.
func TestCommandOrder(t *testing.T) {
	var names []string
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	if got := strings.Join(names, ","); got != "run,validate,init,export,stats" {
		t.Fatalf("unexpected command order %q", got)
	}
}

// TestNoArgsShowsUsage verifies a bare invocation is a usage error.
func TestNoArgsShowsUsage(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run(nil, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if errOut.Len() != 0 || !strings.Contains(out.String(), "ccnaquiz <command>") {
		t.Fatalf("unexpected output %q / %q", out.String(), errOut.String())
	}
}

// TestUnknownCommandPrintsUsageToStderr verifies typos exit with 2.
func TestUnknownCommandPrintsUsageToStderr(t *testing.T) {
	code, out, errOut := runCLI("quiz")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out != "" {
		t.Fatalf("expected no stdout output, got %q", out)
	}
	if !strings.HasPrefix(errOut, "Unknown command: quiz\n") || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

// TestCommandHelpShowsFlags verifies each command documents its own flags.
func TestCommandHelpShowsFlags(t *testing.T) {
	cases := map[string][]string{
		"run":      {"--missed-log <path>", "--seed <n>", "--timeout <duration>", "--ui auto|live|plain", "--history <db>"},
		"validate": {"ccnaquiz validate [--bank <path>]"},
		"init":     {"ccnaquiz init [--config <path>]"},
		"export":   {"--format yaml|json|csv", "<output|->"},
		"stats":    {"--history <db>", "--limit <n>"},
	}
	for name, wants := range cases {
		for _, flag := range []string{"--help", "-h"} {
			code, out, errOut := runCLI(name, flag)
			if code != ExitOK || errOut != "" {
				t.Fatalf("%s %s: unexpected result %d %q", name, flag, code, errOut)
			}
			for _, want := range wants {
				if !strings.Contains(out, want) {
					t.Fatalf("%s: expected %q in help:\n%s", name, want, out)
				}
			}
		}
	}
}
