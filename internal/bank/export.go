package bank

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes the bank as a structured YAML document.
func WriteYAML(w io.Writer, b *Bank) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(ToDocument(b)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return encoder.Close()
}

// WriteJSON writes the bank as an indented JSON document.
func WriteJSON(w io.Writer, b *Bank) error {
	payload, err := json.MarshalIndent(ToDocument(b), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	payload = append(payload, '\n')
	_, err = w.Write(payload)
	return err
}

// WriteDelimited writes the bank in the semicolon line format read by Parse.
func WriteDelimited(w io.Writer, b *Bank) error {
	buf := bufio.NewWriter(w)
	for _, record := range b.Records() {
		fields := make([]string, 0, 1+countFields+len(record.Choices)+len(record.Correct))
		texts := append([]string{record.Question}, record.Choices...)
		for _, text := range texts {
			if strings.Contains(text, fieldSeparator) {
				return fmt.Errorf("question %q: text %q contains %q and cannot be written delimited", record.Question, text, fieldSeparator)
			}
		}
		fields = append(fields, quoteText(record.Question))
		fields = append(fields, strconv.Itoa(record.AnswerCount()), strconv.Itoa(record.CorrectCount()))
		for _, choice := range record.Choices {
			fields = append(fields, quoteText(choice))
		}
		for _, position := range record.Correct {
			fields = append(fields, strconv.Itoa(position))
		}
		if _, err := buf.WriteString(strings.Join(fields, fieldSeparator) + "\n"); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// quoteText is the inverse of unquoteText.
func quoteText(text string) string {
	if text != "" && !strings.Contains(text, `"`) && strings.TrimSpace(text) == text {
		return text
	}
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}
