package config

import (
	"fmt"
	"strings"
	"time"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var issues issueCollector

	if cfg.Version != Version {
		issues.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if cfg.Bank == "" {
		issues.add("bank", "is required")
	}
	if cfg.MissedLog == "" {
		issues.add("missed_log", "is required")
	}
	if cfg.MaxQuestions < 0 {
		issues.add("max_questions", "must be > 0")
	}
	if cfg.AnswerTimeout != "" {
		d, err := time.ParseDuration(cfg.AnswerTimeout)
		switch {
		case err != nil:
			issues.add("answer_timeout", fmt.Sprintf("invalid duration %q", cfg.AnswerTimeout))
		case d < 0:
			issues.add("answer_timeout", "must be >= 0")
		}
	}
	switch cfg.UI {
	case "auto", "live", "plain":
	default:
		issues.add("ui", fmt.Sprintf("unsupported mode %q (expected auto|live|plain)", cfg.UI))
	}

	return issues.result()
}
