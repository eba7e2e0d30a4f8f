// Package verbose writes "[verbose]" diagnostic lines to the console and an
// optional log file.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const prefix = "[verbose]"

// isTerminal is a test seam for TTY detection.
var isTerminal = term.IsTerminal

// Style selects the ANSI styling of a line.
type Style int

const (
	StyleDefault Style = iota
	StyleHeading
	StyleSuccess
	StyleFailure
	StyleDim
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// Options configures a Logger.
type Options struct {
	// Enabled turns on console output. The log file is written regardless.
	Enabled bool
	Console io.Writer
	File    io.Writer
	NoColor bool
}

type sink struct {
	writer  io.Writer
	colored bool
}

// Logger fans verbose lines out to its sinks. A nil Logger is silent.
type Logger struct {
	sinks []sink
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	logger := &Logger{}
	if opts.Enabled && opts.Console != nil {
		logger.sinks = append(logger.sinks, sink{
			writer:  opts.Console,
			colored: !opts.NoColor && shouldUseStyling(opts.Console),
		})
	}
	if opts.File != nil {
		logger.sinks = append(logger.sinks, sink{writer: opts.File})
	}
	return logger
}

// Active reports whether any line would be written.
func (l *Logger) Active() bool {
	return l != nil && len(l.sinks) > 0
}

// Printf writes one formatted line in the default style.
func (l *Logger) Printf(format string, args ...any) {
	l.Styled(StyleDefault, format, args...)
}

// Styled writes one formatted line in the given style.
func (l *Logger) Styled(style Style, format string, args ...any) {
	if !l.Active() {
		return
	}
	line := fmt.Sprintf(format, args...)
	for _, s := range l.sinks {
		writeLine(s, style, line)
	}
}

// Block writes a header line followed by each line of body.
func (l *Logger) Block(header, body string) {
	if !l.Active() {
		return
	}
	for _, s := range l.sinks {
		writeLine(s, StyleHeading, header)
		trimmed := strings.TrimRight(body, "\n")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		for _, line := range strings.Split(trimmed, "\n") {
			writeLine(s, StyleDim, line)
		}
	}
}

func writeLine(s sink, style Style, line string) {
	p := prefix
	if s.colored {
		p = apply(StyleDim, p)
		line = apply(style, line)
	}
	fmt.Fprintf(s.writer, "%s %s\n", p, line)
}

func apply(style Style, text string) string {
	var code string
	switch style {
	case StyleHeading:
		code = ansiBold + ansiCyan
	case StyleSuccess:
		code = ansiGreen
	case StyleFailure:
		code = ansiRed
	case StyleDim:
		code = ansiDim
	default:
		return text
	}
	return code + text + ansiReset
}

// shouldUseStyling reports whether ANSI styling should be enabled.
func shouldUseStyling(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return isTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return isTerminal(int(fder.Fd()))
	}
	return false
}
