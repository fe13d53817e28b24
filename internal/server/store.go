package server

import (
	"context"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
)

// StudentStore is the storage used by StudentService.
type StudentStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateStudent(ctx context.Context, in db.NewStudent) (*db.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*db.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*db.Student, error)
}

// CatalogStore is the storage behind the course, career, college, and
// scholarship endpoints.
type CatalogStore interface {
	CreateCourse(ctx context.Context, in db.NewCourse) (*db.Course, error)
	ListCourses(ctx context.Context) ([]db.Course, error)
	GetCourse(ctx context.Context, id int64) (*db.Course, error)
	GetCourseByName(ctx context.Context, name string) (*db.Course, error)

	CreateCareer(ctx context.Context, in db.NewCareer) (*db.Career, error)
	ListCareers(ctx context.Context) ([]db.Career, error)
	GetCareer(ctx context.Context, id int64) (*db.Career, error)
	GetCareerByName(ctx context.Context, name string) (*db.Career, error)
	MapCourseToCareer(ctx context.Context, careerID, courseID int64) error

	CreateCollege(ctx context.Context, in db.NewCollege) (*db.College, error)
	CreateColleges(ctx context.Context, in []db.NewCollege) ([]db.College, error)
	ListColleges(ctx context.Context) ([]db.College, error)
	SearchColleges(ctx context.Context, name string) ([]db.College, error)
	FilterColleges(ctx context.Context, f db.CollegeFilter) ([]db.College, error)

	CreateScholarship(ctx context.Context, in db.NewScholarship) (*db.Scholarship, error)
	CreateScholarships(ctx context.Context, in []db.NewScholarship) ([]db.Scholarship, error)
	ListScholarships(ctx context.Context) ([]db.Scholarship, error)
	SearchScholarships(ctx context.Context, name string) ([]db.Scholarship, error)
	FilterScholarships(ctx context.Context, f db.ScholarshipFilter) ([]db.Scholarship, error)
}

// Store is everything the server needs from persistence.
type Store interface {
	StudentStore
	CatalogStore
	Ping(ctx context.Context) error
}

// Recommender turns quiz answers into an explained stream recommendation.
type Recommender interface {
	Recommend(ctx context.Context, answers recommend.AnswerSet) (*recommend.Result, error)
}

var (
	_ Store       = (*db.DB)(nil)
	_ Recommender = (*recommend.Service)(nil)
)
