package quiz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// emptyAnswer stands in for a blank response. Correct positions start at 1
// so it never matches.
const emptyAnswer = "0"

// InvalidInputError reports a response that is not a comma separated list
// of integers.
type InvalidInputError struct {
	Input  string
	Reason string
}

// Error returns the offending input and why it was rejected.
func (err *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid answer %q: %s", err.Input, err.Reason)
}

// ParseAnswer converts "2, 1" style input into a sorted set of positions.
// Blank input is read as "0".
func ParseAnswer(input string) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = emptyAnswer
	}
	parts := strings.Split(trimmed, ",")
	seen := make(map[int]struct{}, len(parts))
	positions := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, &InvalidInputError{Input: input, Reason: "empty entry between commas"}
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, &InvalidInputError{Input: input, Reason: fmt.Sprintf("%q is not a number", part)}
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		positions = append(positions, value)
	}
	sort.Ints(positions)
	return positions, nil
}

func samePositions(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
