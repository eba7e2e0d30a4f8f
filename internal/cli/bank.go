package cli

import (
	"fmt"
	"io"

	"github.com/Rem7474/CCNA1/internal/bank"
)

// loadBank is a test seam for question bank loading.
var loadBank = bank.Load

// warnDuplicates reports questions whose later definition won.
func warnDuplicates(w io.Writer, b *bank.Bank) {
	for _, dup := range b.Duplicates() {
		fmt.Fprintf(w, "warning: duplicate question %q on line %d replaces line %d\n",
			dup.Question, dup.ReplacedLine, dup.FirstLine)
	}
}
