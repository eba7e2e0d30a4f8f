package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Rem7474/CCNA1/internal/history"
	"github.com/Rem7474/CCNA1/internal/quiz"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .ccnaquiz/config.yml)")
		historyPath := fs.String("history", "", "DuckDB history file (default: configured history_db)")
		limit := fs.Int("limit", 10, "Rows per table")
		if code, ok := parseFlags(cmd, fs, args, 0, stdout, stderr); !ok {
			return code
		}
		if *limit <= 0 {
			fmt.Fprintln(stderr, "invalid arguments: --limit must be > 0")
			return ExitUsage
		}

		path := *historyPath
		if !fs.Changed("history") {
			resolved, err := resolveConfig(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			path = resolved.Config.HistoryDB
		}
		if path == "" {
			fmt.Fprintln(stderr, "Missing --history (no history_db configured)")
			return ExitUsage
		}
		if path != history.MemoryDSN {
			if _, err := os.Stat(path); err != nil {
				fmt.Fprintf(stderr, "Failed to open history: %v\n", err)
				return ExitError
			}
		}

		ctx := context.Background()
		store, err := history.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open history: %v\n", err)
			return ExitError
		}
		defer func() { _ = store.Close() }()

		missed, err := store.MostMissed(ctx, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}
		sessions, err := store.RecentSessions(ctx, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Stats failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintln(stdout, "Most missed questions:")
		if len(missed) == 0 {
			fmt.Fprintln(stdout, "  (none)")
		} else {
			t := statsTable("Missed", "Asked", "Question")
			for _, item := range missed {
				t.Row(strconv.Itoa(item.Missed), strconv.Itoa(item.Asked), item.Question)
			}
			fmt.Fprintln(stdout, t.String())
		}

		fmt.Fprintln(stdout, "Recent sessions:")
		if len(sessions) == 0 {
			fmt.Fprintln(stdout, "  (none)")
			return ExitOK
		}
		t := statsTable("Session", "Started", "Score", "Pourcentage")
		for _, item := range sessions {
			t.Row(
				item.SessionID,
				item.StartedAt.UTC().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d / %d", item.Correct, item.Answered),
				quiz.FormatPercentage(item.Percentage())+" %",
			)
		}
		fmt.Fprintln(stdout, t.String())
		return ExitOK
	}
}

func statsTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}
