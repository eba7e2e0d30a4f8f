package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rem7474/CCNA1/internal/config"
)

// initInput is a test seam for interactive init prompts.
var initInput io.Reader

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Config file to create (default: .ccnaquiz/config.yml in the repo root)")
		if code, ok := parseFlags(cmd, fs, args, 0, stdout, stderr); !ok {
			return code
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		prompt := newPrompter(in, stdout)

		var targetPath, projectRoot string
		if value := strings.TrimSpace(*configPath); value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = abs
			projectRoot = config.RootFromConfigPath(abs)
		} else {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			projectRoot = wd
			if root := discoverGitRoot(wd); root != "" {
				projectRoot = root
			}
			targetPath = config.ConfigPath(projectRoot)
		}
		configDir := filepath.Dir(targetPath)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		confirm, err := prompt.YesNo(fmt.Sprintf("Initialize ccnaquiz config in %s?", configDir), true)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if !confirm {
			fmt.Fprintln(stderr, "Init cancelled.")
			return ExitError
		}

		cfg := config.Default()
		if cfg.Bank, err = prompt.String("Question bank", config.DefaultBank); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		if cfg.MissedLog, err = prompt.String("Missed questions log", config.DefaultMissedLog); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}

		gitRoot := discoverGitRoot(projectRoot)
		addGitignore := false
		if gitRoot != "" {
			if addGitignore, err = prompt.YesNo("Add the missed questions log to .gitignore?", true); err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}

		if err := config.Scaffold(targetPath, cfg); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", targetPath)

		if addGitignore {
			missedPath := cfg.MissedLog
			if !filepath.IsAbs(missedPath) {
				missedPath = filepath.Join(projectRoot, missedPath)
			}
			updated, err := addGitignoreEntry(gitRoot, missedPath)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(gitRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}
