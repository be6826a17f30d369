package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered for this company")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
