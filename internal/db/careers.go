package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Career Methods
// -----------------------------------------------------------------------------

// NewCareer holds the fields needed to create a career
type NewCareer struct {
	CareerName         string
	Sector             string
	HigherStudyOptions []string
	ExamOptions        []string
}

const careerColumns = `career_id, career_name, sector, higher_study_options, exam_options, created_at, updated_at`

func scanCareer(row pgx.Row) (*Career, error) {
	var c Career
	err := row.Scan(&c.ID, &c.CareerName, &c.Sector, &c.HigherStudyOptions, &c.ExamOptions, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Courses = []Course{}
	return &c, nil
}

// CreateCareer inserts a career. The new career has no linked courses.
func (db *DB) CreateCareer(ctx context.Context, in NewCareer) (_ *Career, err error) {
	defer observe("insert", "careers", time.Now(), &err)

	c, err := scanCareer(db.pool.QueryRow(ctx,
		`INSERT INTO careers (career_name, sector, higher_study_options, exam_options)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+careerColumns,
		in.CareerName, in.Sector, StringArray(in.HigherStudyOptions), StringArray(in.ExamOptions),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create career: %w", err)
	}
	return c, nil
}

// ListCareers returns all careers with their linked courses
func (db *DB) ListCareers(ctx context.Context) (_ []Career, err error) {
	defer observe("select", "careers", time.Now(), &err)

	rows, err := db.pool.Query(ctx, `SELECT `+careerColumns+` FROM careers ORDER BY career_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	defer rows.Close()

	careers := []Career{}
	index := make(map[int64]int)
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan career: %w", err)
		}
		index[c.ID] = len(careers)
		careers = append(careers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate careers: %w", err)
	}

	links, err := db.coursesByCareer(ctx, nil)
	if err != nil {
		return nil, err
	}
	for careerID, courses := range links {
		if i, ok := index[careerID]; ok {
			careers[i].Courses = courses
		}
	}
	return careers, nil
}

// GetCareer retrieves a career with its linked courses
func (db *DB) GetCareer(ctx context.Context, id int64) (*Career, error) {
	c, err := scanCareer(db.pool.QueryRow(ctx,
		`SELECT `+careerColumns+` FROM careers WHERE career_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get career: %w", err)
	}
	return db.withCourses(ctx, c)
}

// GetCareerByName retrieves the first career with an exact name match
func (db *DB) GetCareerByName(ctx context.Context, name string) (*Career, error) {
	c, err := scanCareer(db.pool.QueryRow(ctx,
		`SELECT `+careerColumns+` FROM careers WHERE career_name = $1 ORDER BY career_id LIMIT 1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get career by name: %w", err)
	}
	return db.withCourses(ctx, c)
}

// MapCourseToCareer links a course to a career. Linking twice is a no-op.
func (db *DB) MapCourseToCareer(ctx context.Context, careerID, courseID int64) (err error) {
	defer observe("insert", "career_courses", time.Now(), &err)

	_, err = db.pool.Exec(ctx,
		`INSERT INTO career_courses (career_id, course_id)
		 VALUES ($1, $2)
		 ON CONFLICT (career_id, course_id) DO NOTHING`,
		careerID, courseID,
	)
	if err != nil {
		return fmt.Errorf("failed to map course %d to career %d: %w", courseID, careerID, err)
	}
	return nil
}

func (db *DB) withCourses(ctx context.Context, c *Career) (*Career, error) {
	links, err := db.coursesByCareer(ctx, &c.ID)
	if err != nil {
		return nil, err
	}
	if courses, ok := links[c.ID]; ok {
		c.Courses = courses
	}
	return c, nil
}

// coursesByCareer loads linked courses, for one career or all when careerID is nil.
func (db *DB) coursesByCareer(ctx context.Context, careerID *int64) (map[int64][]Course, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT cc.career_id, c.course_id, c.course_name, c.stream, c.description, c.created_at, c.updated_at
		 FROM career_courses cc
		 JOIN courses c ON c.course_id = cc.course_id
		 WHERE $1::integer IS NULL OR cc.career_id = $1
		 ORDER BY cc.career_id, c.course_id`,
		careerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load career courses: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Course)
	for rows.Next() {
		var id int64
		var c Course
		if err := rows.Scan(&id, &c.ID, &c.CourseName, &c.Stream, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan career course: %w", err)
		}
		out[id] = append(out[id], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate career courses: %w", err)
	}
	return out, nil
}
