package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// -----------------------------------------------------------------------------
// Scholarship Methods
// -----------------------------------------------------------------------------

// NewScholarship holds the fields needed to create a scholarship
type NewScholarship struct {
	ScholarshipName   string
	StartingDate      types.Date
	EndingDate        types.Date
	Amount            float64
	Eligibility       []string
	RequiredDocuments []string
}

const scholarshipColumns = `scholarship_id, scholarship_name, starting_date, ending_date, amount,
	eligibility, required_documents`

const insertScholarshipSQL = `INSERT INTO scholarships
	(scholarship_name, starting_date, ending_date, amount, eligibility, required_documents)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + scholarshipColumns

func scanScholarship(row pgx.Row) (*Scholarship, error) {
	var s Scholarship
	err := row.Scan(&s.ID, &s.ScholarshipName, &s.StartingDate.Time, &s.EndingDate.Time, &s.Amount,
		&s.Eligibility, &s.RequiredDocuments)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scholarshipArgs(in NewScholarship) []any {
	return []any{
		in.ScholarshipName, in.StartingDate.Time, in.EndingDate.Time, in.Amount,
		StringArray(in.Eligibility), StringArray(in.RequiredDocuments),
	}
}

// CreateScholarship inserts a scholarship
func (db *DB) CreateScholarship(ctx context.Context, in NewScholarship) (_ *Scholarship, err error) {
	defer observe("insert", "scholarships", time.Now(), &err)

	s, err := scanScholarship(db.pool.QueryRow(ctx, insertScholarshipSQL, scholarshipArgs(in)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create scholarship: %w", err)
	}
	return s, nil
}

// CreateScholarships inserts scholarships in a single transaction
func (db *DB) CreateScholarships(ctx context.Context, in []NewScholarship) (_ []Scholarship, err error) {
	defer observe("bulk_insert", "scholarships", time.Now(), &err)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	out := make([]Scholarship, 0, len(in))
	for i, item := range in {
		s, err := scanScholarship(tx.QueryRow(ctx, insertScholarshipSQL, scholarshipArgs(item)...))
		if err != nil {
			return nil, fmt.Errorf("failed to create scholarship %d (%s): %w", i, item.ScholarshipName, err)
		}
		out = append(out, *s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit scholarships: %w", err)
	}
	return out, nil
}

// ListScholarships returns all scholarships ordered by ID
func (db *DB) ListScholarships(ctx context.Context) ([]Scholarship, error) {
	return db.queryScholarships(ctx, "select",
		`SELECT `+scholarshipColumns+` FROM scholarships ORDER BY scholarship_id`)
}

// SearchScholarships returns scholarships whose name contains name, case-insensitively
func (db *DB) SearchScholarships(ctx context.Context, name string) ([]Scholarship, error) {
	return db.queryScholarships(ctx, "search",
		`SELECT `+scholarshipColumns+` FROM scholarships WHERE scholarship_name ILIKE $1 ORDER BY scholarship_id`,
		likePattern(name))
}

// FilterScholarships returns scholarships matching the filter. Eligibility is
// a case-insensitive substring match over the eligibility list; the window
// bounds are inclusive.
func (db *DB) FilterScholarships(ctx context.Context, f ScholarshipFilter) ([]Scholarship, error) {
	var startAfter, endBefore *time.Time
	if f.StartAfter != nil {
		startAfter = &f.StartAfter.Time
	}
	if f.EndBefore != nil {
		endBefore = &f.EndBefore.Time
	}

	return db.queryScholarships(ctx, "filter",
		`SELECT `+scholarshipColumns+` FROM scholarships
		 WHERE ($1 = '' OR eligibility::text ILIKE $2)
		   AND ($3::date IS NULL OR starting_date >= $3)
		   AND ($4::date IS NULL OR ending_date <= $4)
		 ORDER BY scholarship_id`,
		f.Eligibility, likePattern(f.Eligibility), startAfter, endBefore)
}

func (db *DB) queryScholarships(ctx context.Context, operation, sql string, args ...any) (_ []Scholarship, err error) {
	defer observe(operation, "scholarships", time.Now(), &err)

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scholarships: %w", err)
	}
	defer rows.Close()

	scholarships := []Scholarship{}
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scholarship: %w", err)
		}
		scholarships = append(scholarships, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scholarships: %w", err)
	}
	return scholarships, nil
}

// likePattern wraps s for a substring ILIKE match, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
