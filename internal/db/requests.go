package db

import (
	"strings"

	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// NewCourseFrom converts a validated API request into an insert record.
func NewCourseFrom(req *types.CourseRequest) NewCourse {
	return NewCourse{
		CourseName:  strings.TrimSpace(req.CourseName),
		Stream:      strings.TrimSpace(req.Stream),
		Description: req.Description,
	}
}

// NewCareerFrom converts a validated API request into an insert record.
func NewCareerFrom(req *types.CareerRequest) NewCareer {
	return NewCareer{
		CareerName:         strings.TrimSpace(req.CareerName),
		Sector:             strings.TrimSpace(req.Sector),
		HigherStudyOptions: req.HigherStudyOptions,
		ExamOptions:        req.ExamOptions,
	}
}

// NewCollegeFrom converts a validated API request into an insert record.
func NewCollegeFrom(req *types.CollegeRequest) NewCollege {
	degrees := make([]Degree, 0, len(req.Degrees))
	for _, d := range req.Degrees {
		degrees = append(degrees, Degree{
			DegreeName:   d.DegreeName,
			Cutoff:       d.Cutoff,
			CutoffStream: d.CutoffStream,
		})
	}
	return NewCollege{
		CollegeName: strings.TrimSpace(req.CollegeName),
		Location:    strings.TrimSpace(req.Location),
		District:    strings.TrimSpace(req.District),
		State:       strings.TrimSpace(req.State),
		Facilities:  req.Facilities,
		Degrees:     degrees,
	}
}

// NewScholarshipFrom converts a validated API request into an insert record.
func NewScholarshipFrom(req *types.ScholarshipRequest) NewScholarship {
	return NewScholarship{
		ScholarshipName:   strings.TrimSpace(req.ScholarshipName),
		StartingDate:      req.StartingDate,
		EndingDate:        req.EndingDate,
		Amount:            req.Amount,
		Eligibility:       req.Eligibility,
		RequiredDocuments: req.RequiredDocuments,
	}
}
