package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// handleCreateCareer creates a career with no linked courses
func (s *Server) handleCreateCareer(w http.ResponseWriter, r *http.Request) {
	var req types.CareerRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	career, err := s.store.CreateCareer(r.Context(), db.NewCareerFrom(&req))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, career)
}

// handleListCareers lists all careers with their courses
func (s *Server) handleListCareers(w http.ResponseWriter, r *http.Request) {
	careers, err := s.store.ListCareers(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, careers)
}

// handleGetCareer retrieves a career by ID
func (s *Server) handleGetCareer(w http.ResponseWriter, r *http.Request) {
	careerID, err := parseIDParam(r, "career_id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	career, err := s.store.GetCareer(r.Context(), careerID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if career == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "career", Key: strconv.FormatInt(careerID, 10)})
		return
	}

	s.jsonResponse(w, http.StatusOK, career)
}

// handleMapCourseToCareer links a course to a career, both named in the query,
// and returns the career with its courses
func (s *Server) handleMapCourseToCareer(w http.ResponseWriter, r *http.Request) {
	careerName := strings.TrimSpace(r.URL.Query().Get("career_name"))
	courseName := strings.TrimSpace(r.URL.Query().Get("course_name"))
	if careerName == "" {
		s.handleError(w, r, &ErrValidation{Field: "career_name", Message: "career_name is required"})
		return
	}
	if courseName == "" {
		s.handleError(w, r, &ErrValidation{Field: "course_name", Message: "course_name is required"})
		return
	}

	ctx := r.Context()
	career, err := s.store.GetCareerByName(ctx, careerName)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if career == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "career", Key: careerName})
		return
	}

	course, err := s.store.GetCourseByName(ctx, courseName)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if course == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "course", Key: courseName})
		return
	}

	if err := s.store.MapCourseToCareer(ctx, career.ID, course.ID); err != nil {
		s.handleError(w, r, err)
		return
	}

	updated, err := s.store.GetCareer(ctx, career.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if updated == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "career", Key: careerName})
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
