package response

import (
	"errors"
	"net/http"

	"github.com/peoplekit/payroll-backend-go/internal/domain/auth"
	"github.com/peoplekit/payroll-backend-go/internal/domain/company"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/payroll"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrNoLinkedEmployee):
		Forbidden(w, "No employee record is linked to this account")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyNameExists):
		Conflict(w, "Company name already exists")
	case errors.Is(err, company.ErrCompanyInactive):
		BadRequest(w, "Company is inactive", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Time record domain errors
	case errors.Is(err, dtr.ErrDtrNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, dtr.ErrDtrAlreadyExists):
		Conflict(w, "Time record already exists for this employee and date")
	case errors.Is(err, dtr.ErrInvalidClockTime):
		BadRequest(w, "Time must be in HH:MM 24-hour format", nil)
	case errors.Is(err, dtr.ErrNotPending):
		Conflict(w, "Time record is not pending")
	case errors.Is(err, dtr.ErrNotApproved):
		Conflict(w, "Time record is not approved")
	case errors.Is(err, dtr.ErrNotRejected):
		Conflict(w, "Time record is not rejected")
	case errors.Is(err, dtr.ErrNotEditable):
		Conflict(w, "Time record can no longer be modified")
	case errors.Is(err, dtr.ErrRejectionReasonNeeded):
		BadRequest(w, "Rejection reason is required", nil)
	case errors.Is(err, dtr.ErrInvalidTransition):
		Conflict(w, "Invalid status transition")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrollNotPending):
		Conflict(w, "Payroll is not pending")
	case errors.Is(err, payroll.ErrPayrollNotProcessed):
		Conflict(w, "Payroll is not processed")
	case errors.Is(err, payroll.ErrNoApprovedDtrs):
		BadRequest(w, "No approved time records in the period", nil)
	case errors.Is(err, payroll.ErrCannotDeleteRecord):
		Conflict(w, "Only pending payrolls can be deleted")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
