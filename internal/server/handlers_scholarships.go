package server

import (
	"net/http"
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// handleCreateScholarship creates a scholarship
func (s *Server) handleCreateScholarship(w http.ResponseWriter, r *http.Request) {
	var req types.ScholarshipRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	scholarship, err := s.store.CreateScholarship(r.Context(), db.NewScholarshipFrom(&req))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, scholarship)
}

// handleBulkCreateScholarships creates many scholarships in one transaction
func (s *Server) handleBulkCreateScholarships(w http.ResponseWriter, r *http.Request) {
	var reqs []types.ScholarshipRequest
	if err := s.decodeJSON(w, r, &reqs); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := checkBulkSize(len(reqs)); err != nil {
		s.handleError(w, r, err)
		return
	}

	records := make([]db.NewScholarship, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			s.handleError(w, r, bulkItemError(i, err))
			return
		}
		records = append(records, db.NewScholarshipFrom(&reqs[i]))
	}

	scholarships, err := s.store.CreateScholarships(r.Context(), records)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, scholarships)
}

// handleListScholarships lists all scholarships
func (s *Server) handleListScholarships(w http.ResponseWriter, r *http.Request) {
	scholarships, err := s.store.ListScholarships(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, scholarships)
}

// handleSearchScholarships finds scholarships whose name contains the query
func (s *Server) handleSearchScholarships(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.handleError(w, r, &ErrValidation{Field: "name", Message: "name is required"})
		return
	}

	scholarships, err := s.store.SearchScholarships(r.Context(), name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, scholarships)
}

// handleFilterScholarships lists scholarships by eligibility and window
func (s *Server) handleFilterScholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.ScholarshipFilter{Eligibility: strings.TrimSpace(q.Get("eligibility"))}

	var err error
	if filter.StartAfter, err = parseDateQuery(q.Get("start_after"), "start_after"); err != nil {
		s.handleError(w, r, err)
		return
	}
	if filter.EndBefore, err = parseDateQuery(q.Get("end_before"), "end_before"); err != nil {
		s.handleError(w, r, err)
		return
	}

	scholarships, err := s.store.FilterScholarships(r.Context(), filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, scholarships)
}

// parseDateQuery parses an optional YYYY-MM-DD query value
func parseDateQuery(raw, field string) (*types.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, &ErrValidation{Field: field, Message: err.Error()}
	}
	return &d, nil
}
