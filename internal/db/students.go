package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Student Methods
// -----------------------------------------------------------------------------

// NewStudent holds the fields needed to register a student
type NewStudent struct {
	Name         string
	Email        string
	PasswordHash string
	Age          *int32
	ClassName    *string
	City         *string
}

const studentColumns = `student_id, name, email, password_hash, age, class_name, city, created_at, updated_at`

func scanStudent(row pgx.Row) (*Student, error) {
	var s Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.PasswordHash, &s.Age, &s.ClassName, &s.City, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStudent inserts a student. A duplicate email yields ErrEmailExists.
func (db *DB) CreateStudent(ctx context.Context, in NewStudent) (_ *Student, err error) {
	defer observe("insert", "students", time.Now(), &err)

	s, err := scanStudent(db.pool.QueryRow(ctx,
		`INSERT INTO students (name, email, password_hash, age, class_name, city)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+studentColumns,
		in.Name, in.Email, in.PasswordHash, in.Age, in.ClassName, in.City,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return s, nil
}

// GetStudentByEmail retrieves a student by email
func (db *DB) GetStudentByEmail(ctx context.Context, email string) (_ *Student, err error) {
	defer observe("select", "students", time.Now(), &err)

	s, err := scanStudent(db.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE email = $1`,
		email,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}
	return s, nil
}

// GetStudentByID retrieves a student by ID
func (db *DB) GetStudentByID(ctx context.Context, id int64) (*Student, error) {
	s, err := scanStudent(db.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// CheckEmailExists reports whether a student with email is registered
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
