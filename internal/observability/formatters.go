// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/schemas"
	"github.com/Meet-08/SIH2025-Prototype/internal/seed"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// contentWidth is the printable width inside a box
	contentWidth = boxWidth - 4
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", contentWidth, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", contentWidth, truncate(line, contentWidth))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnswers outputs each answered question with the chosen option.
func (p *Printer) PrintAnswers(answers recommend.AnswerSet) {
	if len(answers) == 0 {
		return
	}

	var sb strings.Builder
	for i, a := range answers {
		text, ok := recommend.QuestionText(a.Question)
		if !ok {
			text = "Unknown question"
		}
		sb.WriteString(fmt.Sprintf("Q%-3d %s\n", a.Question, text))
		sb.WriteString(fmt.Sprintf("     → option %d", a.Option))
		if i < len(answers)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ANSWERS", sb.String())
}

// PrintScores outputs the recommended stream and the points of every stream
// that scored, in the order they were first awarded.
func (p *Printer) PrintScores(tally *recommend.Tally) {
	if tally == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Recommended stream: %s\n", tally.Winner()))

	streams := tally.Streams()
	if len(streams) > 0 {
		sb.WriteString("\nScores:\n")
		for _, s := range streams {
			sb.WriteString(fmt.Sprintf("  %-15s %d\n", s, tally.Score(s)))
		}
	}

	p.printBox("RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs the generated explanation, wrapped to the box width.
func (p *Printer) PrintExplanation(explanation string) {
	explanation = strings.TrimSpace(explanation)
	if explanation == "" {
		return
	}

	paragraphs := strings.Split(explanation, "\n")
	wrapped := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		wrapped = append(wrapped, wrap(para, contentWidth))
	}

	p.printBox("EXPLANATION", strings.Join(wrapped, "\n"))
}

// PrintSeedReport outputs the number of records inserted per dataset.
func (p *Printer) PrintSeedReport(report seed.Report) {
	if len(report) == 0 {
		return
	}

	var sb strings.Builder
	for _, ds := range schemas.Datasets() {
		if n, ok := report[ds]; ok {
			sb.WriteString(fmt.Sprintf("%-13s %d inserted\n", ds, n))
		}
	}

	p.printBox("SEED REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap breaks text at spaces so no line exceeds width runes. Words longer
// than width are left for truncate.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
