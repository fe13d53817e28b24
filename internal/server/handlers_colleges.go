package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// maxBulkItems caps the records accepted by one bulk request.
const maxBulkItems = 1000

// handleCreateCollege creates a college
func (s *Server) handleCreateCollege(w http.ResponseWriter, r *http.Request) {
	var req types.CollegeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	college, err := s.store.CreateCollege(r.Context(), db.NewCollegeFrom(&req))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, college)
}

// handleBulkCreateColleges creates many colleges in one transaction.
// One invalid record rejects the whole batch.
func (s *Server) handleBulkCreateColleges(w http.ResponseWriter, r *http.Request) {
	var reqs []types.CollegeRequest
	if err := s.decodeJSON(w, r, &reqs); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := checkBulkSize(len(reqs)); err != nil {
		s.handleError(w, r, err)
		return
	}

	records := make([]db.NewCollege, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			s.handleError(w, r, bulkItemError(i, err))
			return
		}
		records = append(records, db.NewCollegeFrom(&reqs[i]))
	}

	colleges, err := s.store.CreateColleges(r.Context(), records)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, colleges)
}

// handleListColleges lists all colleges
func (s *Server) handleListColleges(w http.ResponseWriter, r *http.Request) {
	colleges, err := s.store.ListColleges(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, colleges)
}

// handleSearchColleges finds colleges whose name contains the query
func (s *Server) handleSearchColleges(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		s.handleError(w, r, &ErrValidation{Field: "name", Message: "name is required"})
		return
	}

	colleges, err := s.store.SearchColleges(r.Context(), name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, colleges)
}

// handleFilterColleges lists colleges by city and state
func (s *Server) handleFilterColleges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	colleges, err := s.store.FilterColleges(r.Context(), db.CollegeFilter{
		City:  strings.TrimSpace(q.Get("city")),
		State: strings.TrimSpace(q.Get("state")),
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, colleges)
}

func checkBulkSize(n int) error {
	if n == 0 {
		return &ErrValidation{Field: "body", Message: "at least one record is required"}
	}
	if n > maxBulkItems {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("at most %d records per request", maxBulkItems)}
	}
	return nil
}

// bulkItemError names the offending record of a bulk request.
func bulkItemError(index int, err error) error {
	field := fmt.Sprintf("[%d]", index)
	var tagErrs validator.ValidationErrors
	if errors.As(err, &tagErrs) && len(tagErrs) > 0 {
		err = tagErrs[:1]
	}
	for name, msg := range types.ValidationMessages(err) {
		return &ErrValidation{Field: field + "." + name, Message: msg}
	}
	return &ErrValidation{Field: field, Message: err.Error()}
}
