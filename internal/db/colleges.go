package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// College Methods
// -----------------------------------------------------------------------------

// NewCollege holds the fields needed to create a college
type NewCollege struct {
	CollegeName string
	Location    string
	District    string
	State       string
	Facilities  []string
	Degrees     []Degree
}

const collegeColumns = `college_id, college_name, COALESCE(location, ''), COALESCE(district, ''),
	COALESCE(state, ''), facilities, degrees, created_at`

const insertCollegeSQL = `INSERT INTO colleges (college_name, location, district, state, facilities, degrees)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + collegeColumns

func scanCollege(row pgx.Row) (*College, error) {
	var c College
	err := row.Scan(&c.ID, &c.CollegeName, &c.Location, &c.District, &c.State, &c.Facilities, &c.Degrees, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collegeArgs(in NewCollege) []any {
	return []any{in.CollegeName, in.Location, in.District, in.State, StringArray(in.Facilities), Degrees(in.Degrees)}
}

// CreateCollege inserts a college
func (db *DB) CreateCollege(ctx context.Context, in NewCollege) (_ *College, err error) {
	defer observe("insert", "colleges", time.Now(), &err)

	c, err := scanCollege(db.pool.QueryRow(ctx, insertCollegeSQL, collegeArgs(in)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create college: %w", err)
	}
	return c, nil
}

// CreateColleges inserts colleges in a single transaction; either all are
// stored or none.
func (db *DB) CreateColleges(ctx context.Context, in []NewCollege) (_ []College, err error) {
	defer observe("bulk_insert", "colleges", time.Now(), &err)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	out := make([]College, 0, len(in))
	for i, item := range in {
		c, err := scanCollege(tx.QueryRow(ctx, insertCollegeSQL, collegeArgs(item)...))
		if err != nil {
			return nil, fmt.Errorf("failed to create college %d (%s): %w", i, item.CollegeName, err)
		}
		out = append(out, *c)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit colleges: %w", err)
	}
	return out, nil
}

// ListColleges returns all colleges ordered by ID
func (db *DB) ListColleges(ctx context.Context) ([]College, error) {
	return db.queryColleges(ctx, "select", `SELECT `+collegeColumns+` FROM colleges ORDER BY college_id`)
}

// SearchColleges returns colleges whose name contains name, case-insensitively
func (db *DB) SearchColleges(ctx context.Context, name string) ([]College, error) {
	return db.queryColleges(ctx, "search",
		`SELECT `+collegeColumns+` FROM colleges WHERE college_name ILIKE $1 ORDER BY college_id`,
		likePattern(name))
}

// FilterColleges returns colleges matching the filter. City matches the
// college location exactly.
func (db *DB) FilterColleges(ctx context.Context, f CollegeFilter) ([]College, error) {
	return db.queryColleges(ctx, "filter",
		`SELECT `+collegeColumns+` FROM colleges
		 WHERE ($1 = '' OR location = $1)
		   AND ($2 = '' OR state = $2)
		 ORDER BY college_id`,
		f.City, f.State)
}

func (db *DB) queryColleges(ctx context.Context, operation, sql string, args ...any) (_ []College, err error) {
	defer observe(operation, "colleges", time.Now(), &err)

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query colleges: %w", err)
	}
	defer rows.Close()

	colleges := []College{}
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate colleges: %w", err)
	}
	return colleges, nil
}
