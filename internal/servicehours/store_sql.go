package servicehours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mind-engage/uc-planner/internal/db"
)

const selectColumns = `id,user_id,organization,description,hours,served_on,verified,supervisor_name,supervisor_email,supervisor_phone`

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(h *sql.DB) *SQLStore {
	return &SQLStore{db: h}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		r                  Record
		servedOn           int64
		name, email, phone sql.NullString
	)
	if err := row.Scan(&r.ID, &r.UserID, &r.Organization, &r.Description, &r.Hours, &servedOn,
		&r.Verified, &name, &email, &phone); err != nil {
		return Record{}, err
	}
	r.Date = time.Unix(servedOn, 0).UTC()
	r.SupervisorName = fromNull(name)
	r.SupervisorEmail = fromNull(email)
	r.SupervisorPhone = fromNull(phone)
	return r, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM service_hours WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Get(ctx context.Context, id int64) (Record, error) {
	return getRecord(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getRecord(ctx context.Context, q queryRower, id int64) (Record, error) {
	r, err := scanRecord(q.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM service_hours WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

// Create inserts and returns the row in one statement, so the database
// sequence is the only ID allocator.
func (s *SQLStore) Create(ctx context.Context, n NewRecord) (Record, error) {
	if err := n.Validate(); err != nil {
		return Record{}, err
	}
	r, err := scanRecord(s.db.QueryRowContext(ctx,
		`INSERT INTO service_hours
		   (user_id,organization,description,hours,served_on,verified,supervisor_name,supervisor_email,supervisor_phone)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING `+selectColumns,
		n.UserID, n.Organization, n.Description, n.Hours, n.Date.UTC().Unix(), false,
		toNull(n.SupervisorName), toNull(n.SupervisorEmail), toNull(n.SupervisorPhone)))
	if err != nil {
		return Record{}, fmt.Errorf("insert service hours: %w", err)
	}
	return r, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, p Patch) (Record, error) {
	if err := p.Validate(); err != nil {
		return Record{}, err
	}
	var out Record
	err := db.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		cur, err := getRecord(ctx, tx, id)
		if err != nil {
			return err
		}
		out = cur.apply(p)
		_, err = tx.ExecContext(ctx,
			`UPDATE service_hours SET organization=$1, description=$2, hours=$3, served_on=$4, verified=$5,
			   supervisor_name=$6, supervisor_email=$7, supervisor_phone=$8
			 WHERE id=$9`,
			out.Organization, out.Description, out.Hours, out.Date.Unix(), out.Verified,
			toNull(out.SupervisorName), toNull(out.SupervisorEmail), toNull(out.SupervisorPhone), id)
		return err
	})
	if err != nil {
		return Record{}, err
	}
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM service_hours WHERE id=$1`, id)
	return err
}

func (s *SQLStore) Summary(ctx context.Context, userID int64) (Summary, error) {
	recs, err := s.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return summarize(userID, recs), nil
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
