package server

import (
	"net/http"

	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
	"github.com/Meet-08/SIH2025-Prototype/internal/server/middleware"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// AuthHandler handles student authentication HTTP requests.
type AuthHandler struct {
	studentService *StudentService
	jwtService     *JWTService
	srv            *Server
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(studentService *StudentService, jwtService *JWTService, srv *Server) *AuthHandler {
	return &AuthHandler{
		studentService: studentService,
		jwtService:     jwtService,
		srv:            srv,
	}
}

// Register handles student registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterStudentRequest
	if err := h.srv.decodeJSON(w, r, &req); err != nil {
		h.srv.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.srv.handleError(w, r, err)
		return
	}

	student, err := h.studentService.Register(r.Context(), &req)
	if err != nil {
		h.srv.handleError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, student)
}

// Login handles student login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := h.srv.decodeJSON(w, r, &req); err != nil {
		h.srv.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.srv.handleError(w, r, err)
		return
	}

	student, err := h.studentService.Login(r.Context(), &req)
	if err != nil {
		h.srv.handleError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, student)
}

// Me returns the authenticated student.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	studentID, err := middleware.GetStudentID(r)
	if err != nil {
		h.srv.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	student, err := h.studentService.GetStudent(r.Context(), studentID)
	if err != nil {
		h.srv.handleError(w, r, err)
		return
	}

	h.srv.jsonResponse(w, http.StatusOK, student)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, student *types.Student) {
	token, err := h.jwtService.GenerateToken(student.ID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Int64("student_id", student.ID).Msg("failed to generate token")
		h.srv.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.srv.jsonResponse(w, status, types.LoginResponse{
		Student: student,
		Token:   token,
	})
}
