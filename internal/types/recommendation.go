package types

import (
	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
)

// RecommendationRequest carries quiz answers keyed by question index.
type RecommendationRequest struct {
	Answers map[string]recommend.OptionValue `json:"answers" validate:"required"`
}

// Validate validates the RecommendationRequest.
func (r *RecommendationRequest) Validate() error {
	return validate.Struct(r)
}

// AnswerSet parses the answers into a recommend.AnswerSet.
func (r *RecommendationRequest) AnswerSet() (recommend.AnswerSet, error) {
	return recommend.ParseAnswers(r.Answers)
}

// RecommendationResponse is returned by the recommendation endpoint.
type RecommendationResponse struct {
	RecommendedStream string `json:"recommended_stream"`
	AIReasoning       string `json:"ai_reasoning"`
}

// QuestionsResponse lists the aptitude quiz.
type QuestionsResponse struct {
	Questions []recommend.Question `json:"questions"`
	Streams   []recommend.Stream   `json:"streams"`
}
