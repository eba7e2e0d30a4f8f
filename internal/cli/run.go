package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rem7474/CCNA1/internal/config"
	"github.com/Rem7474/CCNA1/internal/history"
	"github.com/Rem7474/CCNA1/internal/missedlog"
	"github.com/Rem7474/CCNA1/internal/quiz"
	"github.com/Rem7474/CCNA1/internal/results"
	"github.com/Rem7474/CCNA1/internal/ui/live"
	"github.com/Rem7474/CCNA1/internal/verbose"
)

const historyTimeout = 10 * time.Second

// Test seams for the run command.
var (
	runInput      io.Reader
	newSessionID  = results.NewSessionID
	runLive       = live.Run
	notifyContext = func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt)
	}
)

type runFlags struct {
	configPath *string
	bank       *string
	missedLog  *string
	max        *int
	seed       *uint64
	timeout    *time.Duration
	ui         *string
	resultsDir *string
	history    *string
	verbose    *bool
	logPath    *string
	noColor    *bool
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		flags := runFlags{
			configPath: fs.String("config", "", "Path to config file (default: search for .ccnaquiz/config.yml)"),
			bank:       fs.String("bank", "", "Question bank (.csv, .yml, .json)"),
			missedLog:  fs.String("missed-log", "", "File that collects missed questions"),
			max:        fs.Int("max", 0, "Maximum number of questions"),
			seed:       fs.Uint64("seed", 0, "Shuffle seed for a reproducible order"),
			timeout:    fs.Duration("timeout", 0, "Per-question answer timeout (0 disables)"),
			ui:         fs.String("ui", "", "UI mode: auto|live|plain"),
			resultsDir: fs.String("results-dir", "", "Write a JSON results document under this directory"),
			history:    fs.String("history", "", "Record the session in this DuckDB file"),
			verbose:    fs.Bool("verbose", false, "Verbose logging"),
			logPath:    fs.String("log", "", "Write verbose logs to a file"),
			noColor:    fs.Bool("no-color", false, "Disable ANSI colors"),
		}
		if code, ok := parseFlags(cmd, fs, args, 0, stdout, stderr); !ok {
			return code
		}
		if fs.Changed("max") && *flags.max <= 0 {
			fmt.Fprintln(stderr, "invalid arguments: --max must be > 0")
			return ExitUsage
		}
		if *flags.timeout < 0 {
			fmt.Fprintln(stderr, "invalid arguments: --timeout must be >= 0")
			return ExitUsage
		}

		resolved, err := resolveConfig(*flags.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cfg := resolved.Config
		applyRunFlags(fs.Changed, flags, &cfg)
		config.Normalize(&cfg)
		if err := config.Validate(&cfg); err != nil {
			fmt.Fprintf(stderr, "Invalid settings:\n%v\n", err)
			return ExitUsage
		}
		answerTimeout, err := cfg.Timeout()
		if err != nil {
			fmt.Fprintf(stderr, "Invalid settings: %v\n", err)
			return ExitUsage
		}

		logFile, err := openLogFile(*flags.logPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return ExitError
		}
		if logFile != nil {
			defer func() { _ = logFile.Close() }()
		}
		var logWriter io.Writer
		if logFile != nil {
			logWriter = logFile
		}
		logger := verbose.New(verbose.Options{
			Enabled: *flags.verbose,
			Console: stdout,
			File:    logWriter,
			NoColor: *flags.noColor,
		})
		if resolved.Path != "" {
			logger.Printf("config: %s", resolved.Path)
		} else {
			logger.Printf("config: defaults (no %s found)", filepath.Join(config.ConfigDirName, config.ConfigFileName))
		}

		b, err := loadBank(cfg.Bank)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load question bank: %v\n", err)
			return ExitError
		}
		warnDuplicates(stderr, b)
		logger.Printf("bank: %s (%d questions)", cfg.Bank, b.Len())
		logger.Printf("missed log: %s", cfg.MissedLog)

		session, err := quiz.NewSession(b, quiz.Options{MaxQuestions: cfg.MaxQuestions, Seed: cfg.Seed})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to start session: %v\n", err)
			return ExitError
		}

		in := runInput
		if in == nil {
			in = os.Stdin
		}
		decision, err := resolveUIMode(cfg.UI, *flags.verbose, in, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		sessionID, err := newSessionID()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create session id: %v\n", err)
			return ExitError
		}
		logger.Printf("session: %s", sessionID)
		recorder := results.NewRecorder(sessionID, cfg.Bank, nil)
		observer := quiz.Observers{recorder, verbose.SessionObserver{Logger: logger}}
		missed := missedlog.New(cfg.MissedLog)

		ctx, stop := notifyContext()
		defer stop()

		var score quiz.Score
		if decision.useLive {
			score, err = runLive(ctx, session, live.RunOptions{
				Options: live.Options{
					NoColor:       *flags.noColor,
					Missed:        missed,
					Observer:      observer,
					AnswerTimeout: answerTimeout,
				},
				In:        in,
				Out:       stdout,
				Warn:      stderr,
				AltScreen: true,
			})
		} else {
			score, err = quiz.NewRunner(quiz.RunnerOptions{
				In:            in,
				Out:           stdout,
				Warn:          stderr,
				Missed:        missed,
				Observer:      observer,
				AnswerTimeout: answerTimeout,
			}).Run(ctx, session)
		}

		if doc, ok := recorder.Result(); ok && score.Answered > 0 {
			persistSession(cfg, doc, logger, stdout, stderr)
		}

		if err != nil {
			if errors.Is(err, quiz.ErrEmptyBank) {
				fmt.Fprintln(stderr, "No questions answered.")
				return ExitError
			}
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// applyRunFlags copies explicitly set flags over the layered config.
func applyRunFlags(changed func(string) bool, flags runFlags, cfg *config.Config) {
	if changed("bank") {
		cfg.Bank = *flags.bank
	}
	if changed("missed-log") {
		cfg.MissedLog = *flags.missedLog
	}
	if changed("max") {
		cfg.MaxQuestions = *flags.max
	}
	if changed("seed") {
		seed := *flags.seed
		cfg.Seed = &seed
	}
	if changed("timeout") {
		cfg.AnswerTimeout = flags.timeout.String()
	}
	if changed("ui") {
		cfg.UI = *flags.ui
	}
	if changed("results-dir") {
		cfg.ResultsDir = *flags.resultsDir
	}
	if changed("history") {
		cfg.HistoryDB = *flags.history
	}
}

// persistSession writes the results document and history rows. Failures are
// warnings because the quiz itself already completed.
func persistSession(cfg config.Config, doc results.Session, logger *verbose.Logger, stdout, stderr io.Writer) {
	if cfg.ResultsDir != "" {
		path, err := results.Write(cfg.ResultsDir, doc)
		if err != nil {
			fmt.Fprintf(stderr, "warning: results not written: %v\n", err)
		} else {
			fmt.Fprintf(stdout, "Results: %s\n", path)
		}
	}
	if cfg.HistoryDB == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	store, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(stderr, "warning: history not recorded: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()
	if err := store.Record(ctx, doc); err != nil {
		fmt.Fprintf(stderr, "warning: history not recorded: %v\n", err)
		return
	}
	logger.Printf("history: recorded session %s in %s", doc.SessionID, cfg.HistoryDB)
}

// openLogFile truncates or creates the verbose log file when requested.
func openLogFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
