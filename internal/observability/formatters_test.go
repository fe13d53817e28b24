package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/schemas"
	"github.com/Meet-08/SIH2025-Prototype/internal/seed"
)

func TestPrintAnswers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	answers, err := recommend.NewAnswerSet(
		recommend.Answer{Question: 13, Option: 5},
		recommend.Answer{Question: 2, Option: 0},
		recommend.Answer{Question: 42, Option: 1},
	)
	require.NoError(t, err)

	p.PrintAnswers(answers)
	output := buf.String()

	assert.Contains(t, output, "ANSWERS")
	assert.Contains(t, output, "Q2   Which subjects fascinate you most?")
	assert.Contains(t, output, "→ option 5")
	assert.Contains(t, output, "Q42  Unknown question")
	assert.Less(t, strings.Index(output, "Q2 "), strings.Index(output, "Q13"))
}

func TestPrintAnswers_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnswers(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	answers, err := recommend.NewAnswerSet(
		recommend.Answer{Question: 0, Option: 0},
		recommend.Answer{Question: 11, Option: 4},
		recommend.Answer{Question: 13, Option: 5},
	)
	require.NoError(t, err)

	p.PrintScores(recommend.Score(answers))
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATION")
	assert.Contains(t, output, "Recommended stream: Science")
	assert.Contains(t, output, "Science         7")
	assert.Contains(t, output, "Art             4")
	assert.NotContains(t, output, "Commerce")
}

func TestPrintScores_NoMatches(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScores(recommend.Score(nil))

	output := buf.String()
	assert.Contains(t, output, "Recommended stream: Unknown")
	assert.NotContains(t, output, "Scores:")
}

func TestPrintScores_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScores(nil)
	assert.Empty(t, buf.String())
}

func TestPrintExplanation_Wraps(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	text := strings.Repeat("Science suits your curiosity about how things work. ", 4)
	p.PrintExplanation(text)
	output := buf.String()

	assert.Contains(t, output, "EXPLANATION")
	assert.NotContains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, "line %q", line)
	}
}

func TestPrintExplanation_Blank(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintExplanation("  \n ")
	assert.Empty(t, buf.String())
}

func TestPrintSeedReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSeedReport(seed.Report{
		schemas.Careers:  3,
		schemas.Colleges: 12,
	})
	output := buf.String()

	assert.Contains(t, output, "SEED REPORT")
	assert.Contains(t, output, "colleges      12 inserted")
	assert.Contains(t, output, "careers       3 inserted")
	assert.NotContains(t, output, "scholarships")
	assert.Less(t, strings.Index(output, "colleges"), strings.Index(output, "careers"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "→→→...", truncate("→→→→→→→→", 6))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrap("one two three", 8))
	assert.Equal(t, "", wrap("   ", 8))
	assert.Equal(t, "unbreakableword", wrap("unbreakableword", 5))
}
