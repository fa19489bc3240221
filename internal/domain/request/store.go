package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("request not found")
	ErrInvalidState = errors.New("request is not pending")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const requestColumns = `
  id, reference_id, full_name, employee_id, email, joining_date, position,
  department, visiting_country, purpose, leave_start, leave_end, status,
  COALESCE(hr_note, ''), COALESCE(pdf_url, ''), created_at, updated_at
`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.ReferenceID, &r.FullName, &r.EmployeeID, &r.Email,
		&r.JoiningDate, &r.Position, &r.Department, &r.VisitingCountry,
		&r.Purpose, &r.LeaveStart, &r.LeaveEnd, &r.Status, &r.HRNote,
		&r.PDFURL, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (s *Store) Insert(ctx context.Context, payload SubmitPayload, joining, leaveStart, leaveEnd *time.Time) (int64, string, error) {
	ref, err := s.generateReferenceID(ctx)
	if err != nil {
		return 0, "", err
	}

	var id int64
	err = s.DB.QueryRow(ctx, `
    INSERT INTO noc_requests
      (reference_id, full_name, employee_id, email, joining_date, position,
       department, visiting_country, purpose, leave_start, leave_end, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, ref, payload.FullName, payload.EmployeeID, payload.Email, joining,
		payload.Position, payload.Department, payload.VisitingCountry,
		payload.Purpose, leaveStart, leaveEnd, StatusPending).Scan(&id)
	if err != nil {
		return 0, "", err
	}
	return id, ref, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM noc_requests WHERE id = $1", id)
	r, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

// GetByReference looks a request up by its public reference id. The exact
// match is tried first; legacy ids that carried punctuation are matched by
// comparing normalized forms.
func (s *Store) GetByReference(ctx context.Context, ref string) (Request, error) {
	normalized := NormalizeReference(ref)
	if normalized == "" {
		return Request{}, ErrNotFound
	}

	row := s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM noc_requests WHERE reference_id = $1", normalized)
	r, err := scanRequest(row)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Request{}, err
	}

	row = s.DB.QueryRow(ctx, `
    SELECT `+requestColumns+`
    FROM noc_requests
    WHERE upper(regexp_replace(reference_id, '[^A-Za-z0-9]', '', 'g')) = $1
    LIMIT 1
  `, normalized)
	r, err = scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return r, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	where := "WHERE 1=1"
	args := []any{}

	if filter.Status == StatusPending || filter.Status == StatusApproved || filter.Status == StatusRejected {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR email ILIKE $%d)", len(args), len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND created_at::date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND created_at::date <= $%d", len(args))
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM noc_requests "+where, args...).Scan(&total); err != nil {
		return ListResult{}, err
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM noc_requests %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		requestColumns, where, len(args)-1, len(args),
	)
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return ListResult{}, err
	}
	defer rows.Close()

	result := ListResult{Total: total}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return ListResult{}, err
		}
		result.Requests = append(result.Requests, r)
	}
	return result, rows.Err()
}

// Approve marks a pending request approved, recording the generated PDF
// location and an optional review note.
func (s *Store) Approve(ctx context.Context, id int64, pdfURL, hrNote string) error {
	return s.transition(ctx, id, StatusApproved, pdfURL, hrNote)
}

// Reject marks a pending request rejected with a mandatory review note.
func (s *Store) Reject(ctx context.Context, id int64, hrNote string) error {
	return s.transition(ctx, id, StatusRejected, "", hrNote)
}

func (s *Store) transition(ctx context.Context, id int64, to, pdfURL, hrNote string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE noc_requests
    SET status = $1,
        pdf_url = CASE WHEN $2 <> '' THEN $2 ELSE pdf_url END,
        hr_note = CASE WHEN $3 <> '' THEN $3 ELSE hr_note END,
        updated_at = now()
    WHERE id = $4 AND status = $5
  `, to, pdfURL, hrNote, id, StatusPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := s.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrInvalidState
	}
	return nil
}
