package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal is a test seam for TTY detection.
var isTerminal = defaultIsTerminal

// resolveUIMode decides between the live and plain front ends. The live UI
// needs a terminal on both ends; verbose output forces plain mode.
func resolveUIMode(mode string, verbose bool, stdin, stdout any) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto", "live", "plain":
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
	if verbose || normalized == "plain" {
		return uiModeDecision{useLive: false}, nil
	}
	tty := isTerminal(stdin) && isTerminal(stdout)
	if normalized == "live" && !tty {
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but the console is not a TTY; falling back to plain output.",
		}, nil
	}
	return uiModeDecision{useLive: tty}, nil
}

// defaultIsTerminal reports whether a stream is attached to a TTY.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
