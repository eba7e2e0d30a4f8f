package cli

import (
	"fmt"
	"io"

	"github.com/Rem7474/CCNA1/internal/config"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .ccnaquiz/config.yml)")
		bankPath := fs.String("bank", "", "Question bank to check (default: configured bank)")
		if code, ok := parseFlags(cmd, fs, args, 0, stdout, stderr); !ok {
			return code
		}

		resolved, err := resolveConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		path := resolved.Config.Bank
		if fs.Changed("bank") {
			path = *bankPath
		}
		if path == "" {
			path = config.DefaultBank
		}

		b, err := loadBank(path)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		warnDuplicates(stderr, b)
		fmt.Fprintf(stdout, "Bank OK: %d questions\n", b.Len())
		return ExitOK
	}
}
