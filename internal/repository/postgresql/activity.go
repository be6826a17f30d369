package postgresql

import (
	"context"
	"fmt"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.Repository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, a activity.Activity) error {
	q := GetQuerier(ctx, r.db)

	// user_id is empty for scheduler-generated entries
	query := `
		INSERT INTO activities (user_id, action, description)
		VALUES (NULLIF($1, '')::uuid, $2, $3)
	`

	_, err := q.Exec(ctx, query, a.UserID, a.Action, a.Description)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

func (r *activityRepository) List(ctx context.Context, filter activity.Filter) ([]activity.Activity, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ""
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil {
		where += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Action != nil {
		where += fmt.Sprintf(" AND action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM activities WHERE 1=1" + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, COALESCE(user_id::text, ''), action, description, created_at
		FROM activities
		WHERE 1=1%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []activity.Activity{}
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Description, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, total, nil
}
