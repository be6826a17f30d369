package employee

import (
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	CompanyID      string          `json:"company_id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Position       *string         `json:"position,omitempty"`
	EmploymentType string          `json:"employment_type"`
	PayRate        decimal.Decimal `json:"pay_rate"`
	HireDate       string          `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email"})
	}
	if !validator.IsInSlice(r.EmploymentType, []string{
		string(EmploymentTypeRegular), string(EmploymentTypeContract), string(EmploymentTypeProject),
	}) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be 'regular', 'contract' or 'project'"})
	}
	if r.PayRate.IsNegative() || r.PayRate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "pay_rate", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string           `json:"-"`
	FullName       *string          `json:"full_name,omitempty"`
	Email          *string          `json:"email,omitempty"`
	Position       *string          `json:"position,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	PayRate        *decimal.Decimal `json:"pay_rate,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email"})
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, []string{
		string(EmploymentTypeRegular), string(EmploymentTypeContract), string(EmploymentTypeProject),
	}) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be 'regular', 'contract' or 'project'"})
	}
	if r.PayRate != nil && (r.PayRate.IsNegative() || r.PayRate.IsZero()) {
		errs = append(errs, validator.ValidationError{Field: "pay_rate", Message: "must be positive"})
	}
	if r.Status != nil && *r.Status != string(StatusActive) && *r.Status != string(StatusInactive) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	CompanyName    *string         `json:"company_name,omitempty"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Position       *string         `json:"position,omitempty"`
	EmploymentType string          `json:"employment_type"`
	PayRate        decimal.Decimal `json:"pay_rate"`
	HireDate       string          `json:"hire_date"`
	Status         string          `json:"status"`
}

type EmployeeFilter struct {
	CompanyID *string
	Status    *string
	Page      int
	Limit     int
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
