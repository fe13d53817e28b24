package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// parseIDParam parses a positive integer path parameter. IDs are SERIAL
// columns, so values beyond int32 are rejected.
func parseIDParam(r *http.Request, key string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		return 0, &ErrValidation{Field: key, Message: "must be a positive integer"}
	}
	return id, nil
}

// handleCreateCourse creates a course
func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req types.CourseRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	course, err := s.store.CreateCourse(r.Context(), db.NewCourseFrom(&req))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, course)
}

// handleListCourses lists all courses
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.store.ListCourses(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, courses)
}

// handleGetCourse retrieves a course by ID
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "course_id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	course, err := s.store.GetCourse(r.Context(), courseID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if course == nil {
		s.handleError(w, r, &ErrNotFound{Resource: "course", Key: strconv.FormatInt(courseID, 10)})
		return
	}

	s.jsonResponse(w, http.StatusOK, course)
}
