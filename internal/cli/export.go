package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Rem7474/CCNA1/internal/bank"
	"github.com/Rem7474/CCNA1/internal/config"
)

var exportWriters = map[string]func(io.Writer, *bank.Bank) error{
	"yaml": bank.WriteYAML,
	"yml":  bank.WriteYAML,
	"json": bank.WriteJSON,
	"csv":  bank.WriteDelimited,
}

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .ccnaquiz/config.yml)")
		bankPath := fs.String("bank", "", "Question bank to convert (default: configured bank)")
		format := fs.String("format", "yaml", "Output format: yaml|json|csv")
		if code, ok := parseFlags(cmd, fs, args, 1, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Usage: ccnaquiz export --format yaml|json|csv <output|->")
			return ExitUsage
		}
		write, ok := exportWriters[strings.ToLower(strings.TrimSpace(*format))]
		if !ok {
			fmt.Fprintf(stderr, "invalid arguments: unsupported format %q (expected yaml|json|csv)\n", *format)
			return ExitUsage
		}

		path := *bankPath
		if !fs.Changed("bank") {
			resolved, err := resolveConfig(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			path = resolved.Config.Bank
		}
		if path == "" {
			path = config.DefaultBank
		}

		b, err := loadBank(path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load question bank: %v\n", err)
			return ExitError
		}
		warnDuplicates(stderr, b)

		target := fs.Arg(0)
		if target == "-" {
			if err := write(stdout, b); err != nil {
				fmt.Fprintf(stderr, "Export failed: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		if err := writeExportFile(target, b, write); err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Exported %d questions to %s\n", b.Len(), target)
		return ExitOK
	}
}

func writeExportFile(path string, b *bank.Bank, write func(io.Writer, *bank.Bank) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(file, b)
}
