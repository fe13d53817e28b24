package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// StudentService provides business logic for student authentication operations
type StudentService struct {
	db             StudentStore
	passwordConfig *config.PasswordConfig
}

// NewStudentService creates a new StudentService with the given dependencies
func NewStudentService(store StudentStore, passwordConfig *config.PasswordConfig) *StudentService {
	return &StudentService{
		db:             store,
		passwordConfig: passwordConfig,
	}
}

// toPublicStudent converts db.Student to types.Student, excluding password hash
func toPublicStudent(s *db.Student) *types.Student {
	if s == nil {
		return nil
	}
	return &types.Student{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Age:       s.Age,
		ClassName: s.ClassName,
		City:      s.City,
		CreatedAt: s.CreatedAt,
	}
}

// normalizeEmail lowercases and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new student with password authentication
func (s *StudentService) Register(ctx context.Context, req *types.RegisterStudentRequest) (*types.Student, error) {
	if limit := s.passwordConfig.MaxPasswordBytes(); len(req.Password) > limit {
		return nil, &ErrValidation{
			Field:   "password",
			Message: fmt.Sprintf("password must be at most %d bytes", limit),
		}
	}

	email := normalizeEmail(req.Email)

	exists, err := s.db.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	student, err := s.db.CreateStudent(ctx, db.NewStudent{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Age:          req.Age,
		ClassName:    req.ClassName,
		City:         req.City,
	})
	if err != nil {
		// A concurrent registration can win the race past CheckEmailExists
		if errors.Is(err, db.ErrEmailExists) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return toPublicStudent(student), nil
}

// Login authenticates a student and returns student data
func (s *StudentService) Login(ctx context.Context, req *types.LoginRequest) (*types.Student, error) {
	student, err := s.db.GetStudentByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	// Security: Always return generic error if student not found or password wrong
	if student == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, student.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toPublicStudent(student), nil
}

// GetStudent returns the public view of a student
func (s *StudentService) GetStudent(ctx context.Context, studentID int64) (*types.Student, error) {
	student, err := s.db.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, &ErrStudentNotFound{StudentID: studentID}
	}
	return toPublicStudent(student), nil
}
