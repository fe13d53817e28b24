package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/prompts"
)

const (
	promptFile = "recommendation.json"
	promptKey  = "stream-explanation"
)

var explanationTemplate = prompts.MustGet(promptFile, promptKey)

// RenderAnswers renders one line per answer, in question order:
//
//	3. Which subjects fascinate you most? → Selected Option: 1
func RenderAnswers(answers AnswerSet) string {
	ordered := answers.ordered()
	lines := make([]string, 0, len(ordered))
	for _, a := range ordered {
		text, ok := QuestionText(a.Question)
		if !ok {
			text = unknownQuestionText
		}
		lines = append(lines, fmt.Sprintf("%d. %s → Selected Option: %d", a.Question+1, text, a.Option))
	}
	return strings.Join(lines, "\n")
}

// BuildExplanationPrompt embeds the rendered answers and the recommended
// stream into the counselor prompt handed to the explanation generator.
func BuildExplanationPrompt(answers AnswerSet, stream Stream) string {
	return prompts.Format(explanationTemplate, map[string]string{
		"QuestionCount": strconv.Itoa(QuestionCount()),
		"Answers":       RenderAnswers(answers),
		"Stream":        string(stream),
	})
}
