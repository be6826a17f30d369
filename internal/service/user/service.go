package user

import (
	"context"
	"fmt"

	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo     user.Repository
	employeeRepo employee.Repository
}

func NewUserService(userRepo user.Repository, employeeRepo employee.Repository) user.Service {
	return &UserServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
	}
}

// Create implements user.Service.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if req.EmployeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			return user.UserResponse{}, err
		}
		if emp.Status != employee.StatusActive {
			return user.UserResponse{}, employee.ErrEmployeeInactive
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.Role(req.Role),
		EmployeeID:   req.EmployeeID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return toUserResponse(created), nil
}

// LinkEmployee implements user.Service. The linked employee must exist and
// be active; the link drives self-service DTR and payroll access.
func (s *UserServiceImpl) LinkEmployee(ctx context.Context, req user.LinkEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if emp.Status != employee.StatusActive {
		return user.UserResponse{}, employee.ErrEmployeeInactive
	}

	if err := s.userRepo.LinkEmployee(ctx, req.ID, req.EmployeeID); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return toUserResponse(updated), nil
}
