package server

import (
	"net/http"

	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// handleRecommend scores quiz answers and returns the stream with an explanation
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendationRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	answers, err := req.AnswerSet()
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := s.recommender.Recommend(r.Context(), answers)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.RecommendationResponse{
		RecommendedStream: string(result.Stream),
		AIReasoning:       result.Explanation,
	})
}

// handleListQuestions returns the aptitude quiz and the candidate streams
func (s *Server) handleListQuestions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.QuestionsResponse{
		Questions: recommend.ListQuestions(),
		Streams:   recommend.Streams(),
	})
}
