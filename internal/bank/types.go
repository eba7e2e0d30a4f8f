package bank

// Record is one question with its choices and correct positions.
type Record struct {
	Question string
	Choices  []string
	// Correct holds sorted, unique 1-based positions into Choices.
	Correct []int
	// Line is the source line the record was parsed from, 0 when unknown.
	Line int
}

// AnswerCount returns the number of choices.
func (r Record) AnswerCount() int {
	return len(r.Choices)
}

// CorrectCount returns the number of correct positions.
func (r Record) CorrectCount() int {
	return len(r.Correct)
}

// ChoiceText returns the text for a 1-based choice position.
func (r Record) ChoiceText(position int) (string, bool) {
	if position < 1 || position > len(r.Choices) {
		return "", false
	}
	return r.Choices[position-1], true
}

// Duplicate reports a question whose later definition replaced an earlier one.
type Duplicate struct {
	Question     string
	FirstLine    int
	ReplacedLine int
}

// Bank is the ordered collection of loaded records keyed by question text.
type Bank struct {
	Path       string
	records    []Record
	index      map[string]int
	duplicates []Duplicate
}

// New builds a bank from records. Later records with the same question text
// replace earlier ones in place.
func New(path string, records []Record) *Bank {
	b := &Bank{Path: path, index: map[string]int{}}
	for _, record := range records {
		b.add(record)
	}
	return b
}

func (b *Bank) add(record Record) {
	if pos, exists := b.index[record.Question]; exists {
		b.duplicates = append(b.duplicates, Duplicate{
			Question:     record.Question,
			FirstLine:    b.records[pos].Line,
			ReplacedLine: record.Line,
		})
		b.records[pos] = record
		return
	}
	b.index[record.Question] = len(b.records)
	b.records = append(b.records, record)
}

// Len returns the number of unique questions.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// Records returns a copy of the records in load order.
func (b *Bank) Records() []Record {
	if b == nil {
		return nil
	}
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Lookup returns the record for a question text.
func (b *Bank) Lookup(question string) (Record, bool) {
	if b == nil {
		return Record{}, false
	}
	pos, ok := b.index[question]
	if !ok {
		return Record{}, false
	}
	return b.records[pos], true
}

// Duplicates lists questions defined more than once.
func (b *Bank) Duplicates() []Duplicate {
	if b == nil {
		return nil
	}
	out := make([]Duplicate, len(b.duplicates))
	copy(out, b.duplicates)
	return out
}
