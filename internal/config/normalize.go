package config

import (
	"path/filepath"
	"strings"
)

// Normalize trims values and fills defaults for unset fields.
func Normalize(cfg *Config) {
	cfg.Bank = strings.TrimSpace(cfg.Bank)
	cfg.MissedLog = strings.TrimSpace(cfg.MissedLog)
	cfg.AnswerTimeout = strings.TrimSpace(cfg.AnswerTimeout)
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	cfg.ResultsDir = strings.TrimSpace(cfg.ResultsDir)
	cfg.HistoryDB = strings.TrimSpace(cfg.HistoryDB)

	if cfg.Version == 0 {
		cfg.Version = Version
	}
	if cfg.Bank == "" {
		cfg.Bank = DefaultBank
	}
	if cfg.MissedLog == "" {
		cfg.MissedLog = DefaultMissedLog
	}
	if cfg.MaxQuestions == 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if cfg.UI == "" {
		cfg.UI = DefaultUIMode
	}
}

// ResolvePaths makes relative file settings relative to root.
func ResolvePaths(cfg *Config, root string) {
	if root == "" {
		return
	}
	resolve := func(value *string) {
		if *value == "" || filepath.IsAbs(*value) {
			return
		}
		*value = filepath.Join(root, *value)
	}
	resolve(&cfg.Bank)
	resolve(&cfg.MissedLog)
	resolve(&cfg.ResultsDir)
	if cfg.HistoryDB != ":memory:" {
		resolve(&cfg.HistoryDB)
	}
}
