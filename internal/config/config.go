// Package config loads quiz settings from .ccnaquiz/config.yml, .env files,
// and CCNAQUIZ_* environment variables.
package config

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the only supported config schema version.
const Version = 1

// Defaults applied when neither the file nor the environment set a value.
const (
	DefaultBank         = "ExamCiscoCSV.csv"
	DefaultMissedLog    = "erreurs.txt"
	DefaultMaxQuestions = 60
	DefaultUIMode       = "auto"
)

// Config holds the quiz settings.
type Config struct {
	Version       int     `yaml:"version"`
	Bank          string  `yaml:"bank"`
	MissedLog     string  `yaml:"missed_log"`
	MaxQuestions  int     `yaml:"max_questions"`
	Seed          *uint64 `yaml:"seed,omitempty"`
	AnswerTimeout string  `yaml:"answer_timeout,omitempty"`
	UI            string  `yaml:"ui,omitempty"`
	ResultsDir    string  `yaml:"results_dir,omitempty"`
	HistoryDB     string  `yaml:"history_db,omitempty"`
}

// Default returns a config with every default filled in.
func Default() Config {
	return Config{
		Version:      Version,
		Bank:         DefaultBank,
		MissedLog:    DefaultMissedLog,
		MaxQuestions: DefaultMaxQuestions,
		UI:           DefaultUIMode,
	}
}

// Timeout parses AnswerTimeout; an empty value means no timeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.AnswerTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.AnswerTimeout)
	if err != nil {
		return 0, fmt.Errorf("parse answer timeout: %w", err)
	}
	return d, nil
}

// Parse decodes a single strict YAML document.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if err == io.EOF {
			return Config{}, fmt.Errorf("parse config: empty document")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&yaml.Node{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
