package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/database"
)

type dtrRepository struct {
	db *database.DB
}

func NewDtrRepository(db *database.DB) dtr.Repository {
	return &dtrRepository{db: db}
}

const dtrColumns = `
	d.id, d.employee_id, d.date, d.time_in, d.time_out, d.break_hours,
	d.regular_hours, d.overtime_hours, d.status, d.submitted_at,
	d.approved_by, d.approved_at, d.rejection_reason, d.payroll_id,
	d.created_at, d.updated_at, e.full_name
`

func scanDtr(row pgx.Row) (dtr.Dtr, error) {
	var d dtr.Dtr
	err := row.Scan(
		&d.ID, &d.EmployeeID, &d.Date, &d.TimeIn, &d.TimeOut, &d.BreakHours,
		&d.RegularHours, &d.OvertimeHours, &d.Status, &d.SubmittedAt,
		&d.ApprovedBy, &d.ApprovedAt, &d.RejectionReason, &d.PayrollID,
		&d.CreatedAt, &d.UpdatedAt, &d.EmployeeName,
	)
	return d, err
}

func (r *dtrRepository) Create(ctx context.Context, d dtr.Dtr) (dtr.Dtr, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO dtrs (employee_id, date, time_in, time_out, break_hours, regular_hours, overtime_hours, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	created := d
	err := q.QueryRow(ctx, query,
		d.EmployeeID, d.Date, d.TimeIn, d.TimeOut, d.BreakHours,
		d.RegularHours, d.OvertimeHours, d.Status, d.SubmittedAt,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_dtrs_employee_date") {
			return dtr.Dtr{}, dtr.ErrDtrAlreadyExists
		}
		return dtr.Dtr{}, fmt.Errorf("failed to create dtr: %w", err)
	}

	return created, nil
}

func (r *dtrRepository) GetByID(ctx context.Context, id string) (dtr.Dtr, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM dtrs d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.id = $1
	`, dtrColumns)

	d, err := scanDtr(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return dtr.Dtr{}, dtr.ErrDtrNotFound
		}
		return dtr.Dtr{}, fmt.Errorf("failed to get dtr: %w", err)
	}

	return d, nil
}

func (r *dtrRepository) List(ctx context.Context, filter dtr.DtrFilter) ([]dtr.Dtr, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("d.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("d.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("d.date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("d.date <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM dtrs d WHERE %s", strings.Join(where, " AND "))
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count dtrs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM dtrs d
		JOIN employees e ON e.id = d.employee_id
		WHERE %s
		ORDER BY d.date DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, dtrColumns, strings.Join(where, " AND "), argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dtrs: %w", err)
	}
	defer rows.Close()

	var dtrs []dtr.Dtr
	for rows.Next() {
		d, err := scanDtr(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan dtr: %w", err)
		}
		dtrs = append(dtrs, d)
	}

	return dtrs, total, nil
}

func (r *dtrRepository) Update(ctx context.Context, d dtr.Dtr) (dtr.Dtr, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dtrs
		SET time_in = $2, time_out = $3, break_hours = $4, regular_hours = $5,
			overtime_hours = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	updated := d
	err := q.QueryRow(ctx, query,
		d.ID, d.TimeIn, d.TimeOut, d.BreakHours, d.RegularHours, d.OvertimeHours,
	).Scan(&updated.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return dtr.Dtr{}, dtr.ErrDtrNotFound
		}
		return dtr.Dtr{}, fmt.Errorf("failed to update dtr: %w", err)
	}

	return updated, nil
}

func (r *dtrRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM dtrs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete dtr: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dtr.ErrDtrNotFound
	}

	return nil
}

func (r *dtrRepository) SetStatus(ctx context.Context, id string, status dtr.Status, approvedBy *string, reason *string) (dtr.Dtr, error) {
	q := GetQuerier(ctx, r.db)

	// Approval fields follow the transition: set on approve, cleared when a
	// rejected record returns to pending.
	query := `
		UPDATE dtrs
		SET status = $2,
			approved_by = CASE WHEN $3::uuid IS NOT NULL THEN $3::uuid ELSE CASE WHEN $2 = 'pending' THEN NULL ELSE approved_by END END,
			approved_at = CASE WHEN $3::uuid IS NOT NULL THEN NOW() ELSE CASE WHEN $2 = 'pending' THEN NULL ELSE approved_at END END,
			rejection_reason = CASE WHEN $4::text IS NOT NULL THEN $4::text ELSE CASE WHEN $2 = 'pending' THEN NULL ELSE rejection_reason END END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, status, approvedBy, reason).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return dtr.Dtr{}, dtr.ErrDtrNotFound
		}
		return dtr.Dtr{}, fmt.Errorf("failed to set dtr status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *dtrRepository) ListApprovedForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]dtr.Dtr, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM dtrs d
		JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		  AND d.status = 'approved'
		  AND d.payroll_id IS NULL
		  AND d.date BETWEEN $2 AND $3
		ORDER BY d.date
	`, dtrColumns)

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved dtrs: %w", err)
	}
	defer rows.Close()

	var dtrs []dtr.Dtr
	for rows.Next() {
		d, err := scanDtr(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dtr: %w", err)
		}
		dtrs = append(dtrs, d)
	}

	return dtrs, nil
}

func (r *dtrRepository) AssignPayroll(ctx context.Context, ids []string, payrollID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dtrs
		SET payroll_id = $1, status = 'processing', updated_at = NOW()
		WHERE id = ANY($2) AND status = 'approved'
	`

	tag, err := q.Exec(ctx, query, payrollID, ids)
	if err != nil {
		return fmt.Errorf("failed to assign dtrs to payroll: %w", err)
	}
	if int(tag.RowsAffected()) != len(ids) {
		return dtr.ErrNotApproved
	}

	return nil
}

func (r *dtrRepository) AdvanceByPayroll(ctx context.Context, payrollID string, from, to dtr.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dtrs
		SET status = $3, updated_at = NOW()
		WHERE payroll_id = $1 AND status = $2
	`

	tag, err := q.Exec(ctx, query, payrollID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to advance dtrs for payroll: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *dtrRepository) ReleaseByPayroll(ctx context.Context, payrollID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE dtrs
		SET payroll_id = NULL, status = 'approved', updated_at = NOW()
		WHERE payroll_id = $1
	`

	if _, err := q.Exec(ctx, query, payrollID); err != nil {
		return fmt.Errorf("failed to release dtrs from payroll: %w", err)
	}

	return nil
}

func (r *dtrRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM dtrs WHERE status = 'pending' AND submitted_at < $1`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count stale pending dtrs: %w", err)
	}

	return count, nil
}
