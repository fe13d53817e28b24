package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Meet-08/SIH2025-Prototype/internal/observability"
	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
)

var (
	recommendAnswers     string
	recommendAnswerPairs []string
	recommendExplain     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score quiz answers offline",
	Long: `Score a set of quiz answers and print the answers, the recommended stream with
its per-stream scores, and the explanation prompt. With --explain, the prompt is sent to Gemini.

Answers map question index to option, either as a JSON object or as repeated pairs:
  --answers '{"0": 0, "13": 5}'
  --answer 0=0 --answer 13=5`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendAnswers, "answers", "a", "", "Answers as a JSON object")
	recommendCmd.Flags().StringArrayVarP(&recommendAnswerPairs, "answer", "q", nil, "One answer as question=option (repeatable)")
	recommendCmd.Flags().BoolVar(&recommendExplain, "explain", false, "Ask Gemini for the explanation")

	rootCmd.AddCommand(recommendCmd)
}

// parseAnswerFlags builds the answer set from --answers or --answer.
func parseAnswerFlags() (recommend.AnswerSet, error) {
	switch {
	case recommendAnswers != "" && len(recommendAnswerPairs) > 0:
		return nil, fmt.Errorf("use either --answers or --answer, not both")
	case recommendAnswers != "":
		var raw map[string]recommend.OptionValue
		if err := json.Unmarshal([]byte(recommendAnswers), &raw); err != nil {
			return nil, fmt.Errorf("invalid --answers: %w", err)
		}
		return recommend.ParseAnswers(raw)
	case len(recommendAnswerPairs) > 0:
		raw := make(map[string]string, len(recommendAnswerPairs))
		for _, pair := range recommendAnswerPairs {
			question, option, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid --answer %q: expected question=option", pair)
			}
			if _, dup := raw[question]; dup {
				return nil, fmt.Errorf("invalid --answer %q: question %s given twice", pair, question)
			}
			raw[question] = option
		}
		return recommend.ParseAnswerStrings(raw)
	default:
		return nil, fmt.Errorf("one of --answers or --answer is required")
	}
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	answers, err := parseAnswerFlags()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)
	tally := recommend.Score(answers)

	printer.PrintAnswers(answers)
	printer.PrintScores(tally)

	if !recommendExplain {
		fmt.Fprintf(out, "\nPrompt:\n%s\n", recommend.BuildExplanationPrompt(answers, tally.Winner()))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for --explain")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), llmConfig(cfg.LLM).Timeout)
	defer cancel()

	svc, closeLLM, err := newRecommender(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLLM()

	result, err := svc.Recommend(ctx, answers)
	if err != nil {
		return err
	}
	printer.PrintExplanation(result.Explanation)
	return nil
}
