// Package report renders the console diagnosis shown for a failed run: the
// raw failure message under an "Error detected:" header, then the selected
// explanation under an "Explanation:" header. The format is the tool's one
// output contract, so nothing else writes to the diagnosis stream.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Diagnosis is the rendered outcome of classifying one failed run
type Diagnosis struct {
	// Message is the raw failure message, printed verbatim
	Message string
	// RuleName is the rule that selected the explanation
	RuleName string
	// Explanation is the rendered explanation text
	Explanation string
}

// Reporter writes diagnoses to a stream. Headers are stylized red through
// fatih/color, which disables itself when the stream is not a terminal, so
// piped output stays byte-plain.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Print writes the two-block diagnosis. A clean run prints nothing; callers
// only invoke Print when the script failed.
func (r *Reporter) Print(d *Diagnosis) error {
	sb := strings.Builder{}

	sb.WriteString(color.RedString("Error detected:"))
	sb.WriteString("\n")
	sb.WriteString(d.Message)
	sb.WriteString("\n\n")
	sb.WriteString(color.RedString("Explanation:"))
	sb.WriteString("\n")
	sb.WriteString(d.Explanation)
	sb.WriteString("\n")

	if _, err := io.WriteString(r.out, sb.String()); err != nil {
		return fmt.Errorf("failed to write diagnosis: %w", err)
	}

	return nil
}
