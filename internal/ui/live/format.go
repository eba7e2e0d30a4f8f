package live

import (
	"strconv"
	"strings"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// formatQuestionText collapses whitespace and truncates to limit runes.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatPositions renders answer positions as "1,3".
func formatPositions(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// formatVerdict renders the result column.
func formatVerdict(row ReviewRow) string {
	switch {
	case row.TimedOut:
		return "temps écoulé"
	case row.Correct:
		return "bonne"
	default:
		return "mauvaise"
	}
}
