package bank

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	fieldSeparator = ";"
	countFields    = 2
	byteOrderMark  = "\ufeff"
	maxLineBytes   = 1 << 20
)

// ParseLine decodes one delimited bank line:
//
//	question;answerCount;correctCount;choice1;...;choiceN;pos1;...
//
// Quote characters around the counts and positions are ignored and empty
// fields are dropped before the counts are applied.
func ParseLine(line string, lineNo int) (Record, error) {
	line = strings.TrimSpace(line)
	fields := strings.Split(line, fieldSeparator)
	question := unquoteText(fields[0])
	malformed := func(format string, args ...any) error {
		return &MalformedRecordError{Line: lineNo, Question: question, Reason: fmt.Sprintf(format, args...)}
	}
	if question == "" {
		return Record{}, malformed("missing question text")
	}

	values := fields[1:]
	for i := 0; i < countFields && i < len(values); i++ {
		values[i] = stripQuotes(values[i])
	}
	values = dropEmpty(values)
	if len(values) < countFields {
		return Record{}, malformed("expected answer and correct counts, got %d fields", len(values))
	}

	answerCount, err := parseCount(values[0])
	if err != nil {
		return Record{}, malformed("answer count: %v", err)
	}
	correctCount, err := parseCount(values[1])
	if err != nil {
		return Record{}, malformed("correct count: %v", err)
	}
	if correctCount > answerCount {
		return Record{}, malformed("correct count %d exceeds answer count %d", correctCount, answerCount)
	}
	if want := countFields + answerCount + correctCount; len(values) != want {
		return Record{}, malformed("expected %d fields after the question (%d choices, %d positions), got %d",
			want, answerCount, correctCount, len(values))
	}

	choices := make([]string, answerCount)
	for i := range choices {
		choices[i] = unquoteText(values[countFields+i])
	}

	correct := make([]int, 0, correctCount)
	seen := map[int]struct{}{}
	for _, raw := range values[countFields+answerCount:] {
		position, err := strconv.Atoi(stripQuotes(raw))
		if err != nil {
			return Record{}, malformed("correct position %q is not an integer", raw)
		}
		if position < 1 || position > answerCount {
			return Record{}, malformed("correct position %d out of range 1..%d", position, answerCount)
		}
		if _, dup := seen[position]; dup {
			return Record{}, malformed("correct position %d listed twice", position)
		}
		seen[position] = struct{}{}
		correct = append(correct, position)
	}
	sort.Ints(correct)

	return Record{
		Question: question,
		Choices:  choices,
		Correct:  correct,
		Line:     lineNo,
	}, nil
}

// Parse reads a delimited bank, one record per non-blank line.
func Parse(r io.Reader, path string) (*Bank, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := ParseLine(line, lineNo)
		if err != nil {
			var malformed *MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Path = path
			}
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyBank)
	}
	return New(path, records), nil
}

func parseCount(value string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", value)
	}
	if count <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", count)
	}
	return count, nil
}

func stripQuotes(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}

// unquoteText unwraps one pair of enclosing double quotes and collapses
// doubled quotes, as spreadsheet exports write them.
func unquoteText(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = strings.ReplaceAll(value[1:len(value)-1], `""`, `"`)
	}
	return value
}

func dropEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
