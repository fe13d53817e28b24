// Package seed loads catalog data (colleges, scholarships, courses, careers)
// from JSON files into the database. Every file is validated against its
// embedded JSON schema and the API's request rules before anything is written.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/logging"
	"github.com/Meet-08/SIH2025-Prototype/internal/metrics"
	"github.com/Meet-08/SIH2025-Prototype/internal/schemas"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// Store is the storage the loader writes to.
type Store interface {
	CreateColleges(ctx context.Context, in []db.NewCollege) ([]db.College, error)
	CreateScholarships(ctx context.Context, in []db.NewScholarship) ([]db.Scholarship, error)
	CreateCourse(ctx context.Context, in db.NewCourse) (*db.Course, error)
	CreateCareer(ctx context.Context, in db.NewCareer) (*db.Career, error)
	GetCourseByName(ctx context.Context, name string) (*db.Course, error)
	MapCourseToCareer(ctx context.Context, careerID, courseID int64) error
}

// Files names the seed file of each dataset. Datasets without a file are skipped.
type Files map[schemas.Dataset]string

// Report counts the records inserted per dataset.
type Report map[schemas.Dataset]int

// careerRecord is a career seed entry with the names of the courses leading to it.
type careerRecord struct {
	types.CareerRequest
	Courses []string `json:"courses"`
}

// batch is the decoded, validated content of every seed file.
type batch struct {
	colleges     []db.NewCollege
	scholarships []db.NewScholarship
	courses      []db.NewCourse
	careers      []careerRecord
}

// Run validates every file, then inserts colleges and scholarships in
// parallel with courses followed by careers. Courses go first so careers can
// link to them by name.
func Run(ctx context.Context, store Store, files Files) (Report, error) {
	b, err := load(files)
	if err != nil {
		return nil, err
	}

	report := Report{}
	counts := make([]int, 4)

	g, gctx := errgroup.WithContext(ctx)

	if len(b.colleges) > 0 {
		g.Go(func() error {
			created, err := store.CreateColleges(gctx, b.colleges)
			if err != nil {
				return fmt.Errorf("failed to seed colleges: %w", err)
			}
			counts[0] = len(created)
			return nil
		})
	}

	if len(b.scholarships) > 0 {
		g.Go(func() error {
			created, err := store.CreateScholarships(gctx, b.scholarships)
			if err != nil {
				return fmt.Errorf("failed to seed scholarships: %w", err)
			}
			counts[1] = len(created)
			return nil
		})
	}

	if len(b.courses) > 0 || len(b.careers) > 0 {
		g.Go(func() error {
			n, err := seedCourses(gctx, store, b.courses)
			counts[2] = n
			if err != nil {
				return err
			}
			n, err = seedCareers(gctx, store, b.careers)
			counts[3] = n
			return err
		})
	}

	err = g.Wait()

	for i, ds := range []schemas.Dataset{schemas.Colleges, schemas.Scholarships, schemas.Courses, schemas.Careers} {
		if _, ok := files[ds]; !ok {
			continue
		}
		report[ds] = counts[i]
		metrics.RecordSeeded(string(ds), counts[i])
		logging.Ctx(ctx).Info().Str("dataset", string(ds)).Int("inserted", counts[i]).Msg("seeded dataset")
	}

	return report, err
}

func seedCourses(ctx context.Context, store Store, courses []db.NewCourse) (int, error) {
	for i, c := range courses {
		if _, err := store.CreateCourse(ctx, c); err != nil {
			return i, fmt.Errorf("failed to seed course %q: %w", c.CourseName, err)
		}
	}
	return len(courses), nil
}

func seedCareers(ctx context.Context, store Store, careers []careerRecord) (int, error) {
	for i := range careers {
		rec := &careers[i]
		career, err := store.CreateCareer(ctx, db.NewCareerFrom(&rec.CareerRequest))
		if err != nil {
			return i, fmt.Errorf("failed to seed career %q: %w", rec.CareerName, err)
		}

		for _, name := range rec.Courses {
			course, err := store.GetCourseByName(ctx, strings.TrimSpace(name))
			if err != nil {
				return i, fmt.Errorf("failed to look up course %q: %w", name, err)
			}
			if course == nil {
				return i, fmt.Errorf("career %q links unknown course %q", rec.CareerName, name)
			}
			if err := store.MapCourseToCareer(ctx, career.ID, course.ID); err != nil {
				return i, fmt.Errorf("failed to link course %q to career %q: %w", name, rec.CareerName, err)
			}
		}
	}
	return len(careers), nil
}

// load validates and decodes every named file. Nothing is written on failure.
func load(files Files) (*batch, error) {
	b := &batch{}

	for _, ds := range schemas.Datasets() {
		path, ok := files[ds]
		if !ok || path == "" {
			continue
		}

		data, err := schemas.ValidateSeedFile(ds, path)
		if err != nil {
			return nil, err
		}

		switch ds {
		case schemas.Colleges:
			var reqs []types.CollegeRequest
			if err := decode(ds, data, &reqs); err != nil {
				return nil, err
			}
			for i := range reqs {
				if err := reqs[i].Validate(); err != nil {
					return nil, recordError(ds, i, err)
				}
				b.colleges = append(b.colleges, db.NewCollegeFrom(&reqs[i]))
			}

		case schemas.Scholarships:
			var reqs []types.ScholarshipRequest
			if err := decode(ds, data, &reqs); err != nil {
				return nil, err
			}
			for i := range reqs {
				if err := reqs[i].Validate(); err != nil {
					return nil, recordError(ds, i, err)
				}
				b.scholarships = append(b.scholarships, db.NewScholarshipFrom(&reqs[i]))
			}

		case schemas.Courses:
			var reqs []types.CourseRequest
			if err := decode(ds, data, &reqs); err != nil {
				return nil, err
			}
			for i := range reqs {
				if err := reqs[i].Validate(); err != nil {
					return nil, recordError(ds, i, err)
				}
				b.courses = append(b.courses, db.NewCourseFrom(&reqs[i]))
			}

		case schemas.Careers:
			if err := decode(ds, data, &b.careers); err != nil {
				return nil, err
			}
			for i := range b.careers {
				if err := b.careers[i].Validate(); err != nil {
					return nil, recordError(ds, i, err)
				}
			}
		}
	}

	return b, nil
}

func decode(ds schemas.Dataset, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s seed: %w", ds, err)
	}
	return nil
}

func recordError(ds schemas.Dataset, index int, err error) error {
	return fmt.Errorf("%s seed record %d is invalid: %w", ds, index, err)
}
