package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	LinkEmployee(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (u *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := u.userService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create user", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", res)
}

// LinkEmployee implements UserHandler.
func (u *UserHandlerImpl) LinkEmployee(w http.ResponseWriter, r *http.Request) {
	var req user.LinkEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Link employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req.ID = id

	res, err := u.userService.LinkEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Failed to link employee", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee linked successfully", res)
}
