package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	LinkEmployee(ctx context.Context, id string, employeeID string) error
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	LinkEmployee(ctx context.Context, req LinkEmployeeRequest) (UserResponse, error)
}
