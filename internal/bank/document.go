package bank

import (
	"fmt"
	"sort"
	"strings"
)

// DocumentVersion is the only structured bank version understood.
const DocumentVersion = 1

// Document is the structured (YAML or JSON) form of a bank.
type Document struct {
	Version   int                `json:"version" yaml:"version"`
	Questions []DocumentQuestion `json:"questions" yaml:"questions"`
}

// DocumentQuestion is one question in a structured bank.
type DocumentQuestion struct {
	Question string   `json:"question" yaml:"question"`
	Choices  []string `json:"choices" yaml:"choices"`
	Correct  []int    `json:"correct" yaml:"correct"`
}

// FromDocument validates a structured document and builds a bank from it.
func FromDocument(doc Document, path string) (*Bank, error) {
	collector := &issueCollector{}
	if doc.Version == 0 {
		collector.add("version", "is required")
	} else if doc.Version != DocumentVersion {
		collector.add("version", fmt.Sprintf("unsupported version %d", doc.Version))
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyBank)
	}

	records := make([]Record, 0, len(doc.Questions))
	for i, question := range doc.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		record := Record{Question: strings.TrimSpace(question.Question)}
		if record.Question == "" {
			collector.add(prefix+".question", "is required")
		}

		if len(question.Choices) == 0 {
			collector.add(prefix+".choices", "must include at least one entry")
		}
		for choiceIndex, choice := range question.Choices {
			choice = strings.TrimSpace(choice)
			if choice == "" {
				collector.add(fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex), "is required")
			}
			record.Choices = append(record.Choices, choice)
		}

		if len(question.Correct) == 0 {
			collector.add(prefix+".correct", "must include at least one entry")
		}
		seen := map[int]struct{}{}
		for correctIndex, position := range question.Correct {
			field := fmt.Sprintf("%s.correct[%d]", prefix, correctIndex)
			if position < 1 || position > len(question.Choices) {
				collector.add(field, fmt.Sprintf("position %d out of range 1..%d", position, len(question.Choices)))
				continue
			}
			if _, dup := seen[position]; dup {
				collector.add(field, fmt.Sprintf("duplicate position %d", position))
				continue
			}
			seen[position] = struct{}{}
			record.Correct = append(record.Correct, position)
		}
		sort.Ints(record.Correct)
		records = append(records, record)
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return New(path, records), nil
}

// ToDocument converts a bank into its structured form.
func ToDocument(b *Bank) Document {
	doc := Document{Version: DocumentVersion}
	for _, record := range b.Records() {
		doc.Questions = append(doc.Questions, DocumentQuestion{
			Question: record.Question,
			Choices:  append([]string(nil), record.Choices...),
			Correct:  append([]int(nil), record.Correct...),
		})
	}
	return doc
}
