package bank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBank indicates that a bank holds no usable records.
var ErrEmptyBank = errors.New("question bank is empty")

// MalformedRecordError reports a bank line that does not decompose into the
// declared field counts.
type MalformedRecordError struct {
	Path     string
	Line     int
	Question string
	Reason   string
}

// Error returns a message that locates the offending line.
func (err *MalformedRecordError) Error() string {
	location := fmt.Sprintf("line %d", err.Line)
	if err.Path != "" {
		location = fmt.Sprintf("%s:%d", err.Path, err.Line)
	}
	if err.Question == "" {
		return fmt.Sprintf("malformed record at %s: %s", location, err.Reason)
	}
	return fmt.Sprintf("malformed record at %s (%q): %s", location, err.Question, err.Reason)
}

// MissingResourceError reports a bank path that cannot be read.
type MissingResourceError struct {
	Path string
	Err  error
}

// Error returns the path and the underlying cause.
func (err *MissingResourceError) Error() string {
	return fmt.Sprintf("cannot read question bank %s: %v", err.Path, err.Err)
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (err *MissingResourceError) Unwrap() error {
	return err.Err
}

// Issue captures a validation problem in a structured bank.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more structured bank issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}
