package activity

import "context"

type Repository interface {
	Create(ctx context.Context, a Activity) error
	List(ctx context.Context, filter Filter) ([]Activity, int64, error)
}

type Service interface {
	List(ctx context.Context, filter Filter) (ListActivityResponse, error)
}

type Filter struct {
	UserID *string
	Action *string
	Page   int
	Limit  int
}

type ActivityResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type ListActivityResponse struct {
	Data       []ActivityResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
