package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
)

type ActivityServiceImpl struct {
	activityRepo activity.Repository
}

func NewActivityService(activityRepo activity.Repository) activity.Service {
	return &ActivityServiceImpl{activityRepo: activityRepo}
}

// List implements activity.Service.
func (s *ActivityServiceImpl) List(ctx context.Context, filter activity.Filter) (activity.ListActivityResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	activities, total, err := s.activityRepo.List(ctx, filter)
	if err != nil {
		return activity.ListActivityResponse{}, fmt.Errorf("failed to list activities: %w", err)
	}

	data := make([]activity.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		data = append(data, activity.ActivityResponse{
			ID:          a.ID,
			UserID:      a.UserID,
			Action:      a.Action,
			Description: a.Description,
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		})
	}

	return activity.ListActivityResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
