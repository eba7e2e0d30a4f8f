package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys that override file values.
const (
	EnvBank          = "CCNAQUIZ_BANK"
	EnvMissedLog     = "CCNAQUIZ_MISSED_LOG"
	EnvMaxQuestions  = "CCNAQUIZ_MAX_QUESTIONS"
	EnvSeed          = "CCNAQUIZ_SEED"
	EnvAnswerTimeout = "CCNAQUIZ_ANSWER_TIMEOUT"
	EnvUI            = "CCNAQUIZ_UI"
	EnvResultsDir    = "CCNAQUIZ_RESULTS_DIR"
	EnvHistoryDB     = "CCNAQUIZ_HISTORY_DB"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ReadDotEnv reads dir/.env. A missing file yields an empty map.
func ReadDotEnv(dir string) (map[string]string, error) {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", EnvFileName, err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", EnvFileName, err)
	}
	return values, nil
}

// Lookup prefers the process environment and falls back to dotenv values.
func Lookup(environ LookupFunc, dotenv map[string]string) LookupFunc {
	if environ == nil {
		environ = os.LookupEnv
	}
	return func(key string) (string, bool) {
		if value, ok := environ(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
}

// ApplyEnv overrides cfg fields with any CCNAQUIZ_* values present.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	var issues issueCollector
	setString := func(key string, target *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	setString(EnvBank, &cfg.Bank)
	setString(EnvMissedLog, &cfg.MissedLog)
	setString(EnvAnswerTimeout, &cfg.AnswerTimeout)
	setString(EnvUI, &cfg.UI)
	setString(EnvResultsDir, &cfg.ResultsDir)
	setString(EnvHistoryDB, &cfg.HistoryDB)

	if value, ok := lookup(EnvMaxQuestions); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			issues.add(EnvMaxQuestions, fmt.Sprintf("%q is not an integer", value))
		} else {
			cfg.MaxQuestions = parsed
		}
	}
	if value, ok := lookup(EnvSeed); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			issues.add(EnvSeed, fmt.Sprintf("%q is not an unsigned integer", value))
		} else {
			cfg.Seed = &parsed
		}
	}
	return issues.result()
}
