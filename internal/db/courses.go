package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Course Methods
// -----------------------------------------------------------------------------

// NewCourse holds the fields needed to create a course
type NewCourse struct {
	CourseName  string
	Stream      string
	Description string
}

const courseColumns = `course_id, course_name, stream, description, created_at, updated_at`

func scanCourse(row pgx.Row) (*Course, error) {
	var c Course
	if err := row.Scan(&c.ID, &c.CourseName, &c.Stream, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCourse inserts a course
func (db *DB) CreateCourse(ctx context.Context, in NewCourse) (_ *Course, err error) {
	defer observe("insert", "courses", time.Now(), &err)

	c, err := scanCourse(db.pool.QueryRow(ctx,
		`INSERT INTO courses (course_name, stream, description)
		 VALUES ($1, $2, $3)
		 RETURNING `+courseColumns,
		in.CourseName, in.Stream, in.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return c, nil
}

// ListCourses returns all courses ordered by ID
func (db *DB) ListCourses(ctx context.Context) (_ []Course, err error) {
	defer observe("select", "courses", time.Now(), &err)

	rows, err := db.pool.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY course_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}
	return courses, nil
}

// GetCourse retrieves a course by ID
func (db *DB) GetCourse(ctx context.Context, id int64) (*Course, error) {
	c, err := scanCourse(db.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return c, nil
}

// GetCourseByName retrieves the first course with an exact name match
func (db *DB) GetCourseByName(ctx context.Context, name string) (*Course, error) {
	c, err := scanCourse(db.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_name = $1 ORDER BY course_id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course by name: %w", err)
	}
	return c, nil
}
