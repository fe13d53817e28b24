package server

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Meet-08/SIH2025-Prototype/internal/config"
	"github.com/Meet-08/SIH2025-Prototype/internal/db"
	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/server/ratelimit"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	students     []db.Student
	courses      []db.Course
	careers      []db.Career
	links        map[int64][]int64
	colleges     []db.College
	scholarships []db.Scholarship
	pingErr      error
	failWith     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{links: make(map[int64][]int64)}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, s := range f.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateStudent(_ context.Context, in db.NewStudent) (*db.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Email == in.Email {
			return nil, db.ErrEmailExists
		}
	}
	s := db.Student{
		ID:           f.id(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Age:          in.Age,
		ClassName:    in.ClassName,
		City:         in.City,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.students = append(f.students, s)
	return &s, nil
}

func (f *fakeStore) GetStudentByEmail(_ context.Context, email string) (*db.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetStudentByID(_ context.Context, id int64) (*db.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateCourse(_ context.Context, in db.NewCourse) (*db.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	c := db.Course{ID: f.id(), CourseName: in.CourseName, Stream: in.Stream, Description: in.Description}
	f.courses = append(f.courses, c)
	return &c, nil
}

func (f *fakeStore) ListCourses(context.Context) ([]db.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]db.Course{}, f.courses...), nil
}

func (f *fakeStore) GetCourse(_ context.Context, id int64) (*db.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetCourseByName(_ context.Context, name string) (*db.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.CourseName == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateCareer(_ context.Context, in db.NewCareer) (*db.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := db.Career{
		ID:                 f.id(),
		CareerName:         in.CareerName,
		Sector:             in.Sector,
		HigherStudyOptions: in.HigherStudyOptions,
		ExamOptions:        in.ExamOptions,
		Courses:            []db.Course{},
	}
	f.careers = append(f.careers, c)
	return &c, nil
}

// withCoursesLocked attaches linked courses. Callers hold f.mu.
func (f *fakeStore) withCoursesLocked(c db.Career) db.Career {
	c.Courses = []db.Course{}
	for _, courseID := range f.links[c.ID] {
		for _, course := range f.courses {
			if course.ID == courseID {
				c.Courses = append(c.Courses, course)
			}
		}
	}
	return c
}

func (f *fakeStore) ListCareers(context.Context) ([]db.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.Career, 0, len(f.careers))
	for _, c := range f.careers {
		out = append(out, f.withCoursesLocked(c))
	}
	return out, nil
}

func (f *fakeStore) GetCareer(_ context.Context, id int64) (*db.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.careers {
		if c.ID == id {
			c = f.withCoursesLocked(c)
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetCareerByName(_ context.Context, name string) (*db.Career, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.careers {
		if c.CareerName == name {
			c = f.withCoursesLocked(c)
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) MapCourseToCareer(_ context.Context, careerID, courseID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.links[careerID] {
		if id == courseID {
			return nil
		}
	}
	f.links[careerID] = append(f.links[careerID], courseID)
	return nil
}

func (f *fakeStore) CreateCollege(_ context.Context, in db.NewCollege) (*db.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.collegeLocked(in)
	f.colleges = append(f.colleges, c)
	return &c, nil
}

func (f *fakeStore) collegeLocked(in db.NewCollege) db.College {
	return db.College{
		ID:          f.id(),
		CollegeName: in.CollegeName,
		Location:    in.Location,
		District:    in.District,
		State:       in.State,
		Facilities:  in.Facilities,
		Degrees:     in.Degrees,
	}
}

func (f *fakeStore) CreateColleges(_ context.Context, in []db.NewCollege) ([]db.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]db.College, 0, len(in))
	for _, n := range in {
		out = append(out, f.collegeLocked(n))
	}
	f.colleges = append(f.colleges, out...)
	return out, nil
}

func (f *fakeStore) ListColleges(context.Context) ([]db.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]db.College{}, f.colleges...), nil
}

func (f *fakeStore) SearchColleges(_ context.Context, name string) ([]db.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.College{}
	for _, c := range f.colleges {
		if strings.Contains(strings.ToLower(c.CollegeName), strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) FilterColleges(_ context.Context, filter db.CollegeFilter) ([]db.College, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.College{}
	for _, c := range f.colleges {
		if (filter.City == "" || c.Location == filter.City) && (filter.State == "" || c.State == filter.State) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateScholarship(_ context.Context, in db.NewScholarship) (*db.Scholarship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.scholarshipLocked(in)
	f.scholarships = append(f.scholarships, s)
	return &s, nil
}

func (f *fakeStore) scholarshipLocked(in db.NewScholarship) db.Scholarship {
	return db.Scholarship{
		ID:                f.id(),
		ScholarshipName:   in.ScholarshipName,
		StartingDate:      in.StartingDate,
		EndingDate:        in.EndingDate,
		Amount:            in.Amount,
		Eligibility:       in.Eligibility,
		RequiredDocuments: in.RequiredDocuments,
	}
}

func (f *fakeStore) CreateScholarships(_ context.Context, in []db.NewScholarship) ([]db.Scholarship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]db.Scholarship, 0, len(in))
	for _, n := range in {
		out = append(out, f.scholarshipLocked(n))
	}
	f.scholarships = append(f.scholarships, out...)
	return out, nil
}

func (f *fakeStore) ListScholarships(context.Context) ([]db.Scholarship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]db.Scholarship{}, f.scholarships...), nil
}

func (f *fakeStore) SearchScholarships(_ context.Context, name string) ([]db.Scholarship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.Scholarship{}
	for _, s := range f.scholarships {
		if strings.Contains(strings.ToLower(s.ScholarshipName), strings.ToLower(name)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) FilterScholarships(_ context.Context, filter db.ScholarshipFilter) ([]db.Scholarship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.Scholarship{}
	for _, s := range f.scholarships {
		if filter.StartAfter != nil && s.StartingDate.Before(filter.StartAfter.Time) {
			continue
		}
		if filter.EndBefore != nil && s.EndingDate.After(filter.EndBefore.Time) {
			continue
		}
		if filter.Eligibility != "" && !containsFold(s.Eligibility, filter.Eligibility) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func containsFold(list []string, needle string) bool {
	for _, item := range list {
		if strings.Contains(strings.ToLower(item), strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// fakeRecommender scores with the real rules and returns a fixed explanation.
type fakeRecommender struct {
	explanation string
	err         error
	calls       int
}

func (f *fakeRecommender) Recommend(_ context.Context, answers recommend.AnswerSet) (*recommend.Result, error) {
	f.calls++
	stream := recommend.RecommendStream(answers)
	if f.err != nil {
		return nil, &recommend.ExplanationError{Stream: stream, Err: f.err}
	}
	return &recommend.Result{Stream: stream, Explanation: f.explanation}, nil
}

var errDatabaseDown = errors.New("connection refused")

// newTestServer builds a Server over in-memory fakes with rate limiting off.
func newTestServer(t *testing.T) (*Server, *fakeStore, *fakeRecommender) {
	t.Helper()
	return newTestServerWithPepper(t, "")
}

// newTestServerWithPepper is newTestServer with a password pepper.
func newTestServerWithPepper(t *testing.T, pepper string) (*Server, *fakeStore, *fakeRecommender) {
	t.Helper()

	jwtCfg, err := config.NewJWTConfig("test-secret-key-for-testing-only", 1)
	require.NoError(t, err)
	pwCfg, err := config.NewPasswordConfig(10, pepper)
	require.NoError(t, err)

	store := newFakeStore()
	rec := &fakeRecommender{explanation: "Because you like experiments."}
	srv, err := New(Config{
		Server:    config.Default().Server,
		JWT:       jwtCfg,
		Password:  pwCfg,
		RateLimit: &ratelimit.Config{},
	}, store, rec)
	require.NoError(t, err)
	t.Cleanup(srv.rateLimiter.Stop)

	return srv, store, rec
}
