package dtr

import (
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SubmitDtrRequest struct {
	EmployeeID    string           `json:"employee_id"`
	Date          string           `json:"date"`
	TimeIn        string           `json:"time_in"`
	TimeOut       string           `json:"time_out"`
	BreakHours    *decimal.Decimal `json:"break_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
}

func (r *SubmitDtrRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if !validator.IsValidClock(r.TimeIn) {
		errs = append(errs, validator.ValidationError{Field: "time_in", Message: "must be a time in HH:MM format"})
	}
	if !validator.IsValidClock(r.TimeOut) {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be a time in HH:MM format"})
	}
	if r.BreakHours != nil && r.BreakHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "break_hours", Message: "must be non-negative"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDtrRequest struct {
	ID            string           `json:"-"`
	TimeIn        *string          `json:"time_in,omitempty"`
	TimeOut       *string          `json:"time_out,omitempty"`
	BreakHours    *decimal.Decimal `json:"break_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
}

func (r *UpdateDtrRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.TimeIn != nil && !validator.IsValidClock(*r.TimeIn) {
		errs = append(errs, validator.ValidationError{Field: "time_in", Message: "must be a time in HH:MM format"})
	}
	if r.TimeOut != nil && !validator.IsValidClock(*r.TimeOut) {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be a time in HH:MM format"})
	}
	if r.BreakHours != nil && r.BreakHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "break_hours", Message: "must be non-negative"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectDtrRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

type DtrResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	Date            string          `json:"date"`
	TimeIn          string          `json:"time_in"`
	TimeOut         string          `json:"time_out"`
	BreakHours      decimal.Decimal `json:"break_hours"`
	RegularHours    decimal.Decimal `json:"regular_hours"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	Status          string          `json:"status"`
	SubmittedAt     string          `json:"submitted_at"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *string         `json:"approved_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	PayrollID       *string         `json:"payroll_id,omitempty"`
}

type DtrFilter struct {
	EmployeeID *string
	Status     *string
	DateFrom   *string
	DateTo     *string
	Page       int
	Limit      int
}

type ListDtrResponse struct {
	Data       []DtrResponse `json:"data"`
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
}

// ========== BULK DTOs ==========

type BulkRequest struct {
	DtrIDs []string `json:"dtr_ids"`
	// Reason applies to bulk reject only.
	Reason *string `json:"reason,omitempty"`
}

func (r *BulkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.DtrIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "dtr_ids", Message: "at least one id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BulkResult reports a partial-failure batch: processed + len(errors) == total.
type BulkResult struct {
	Success   bool            `json:"success"`
	Processed int             `json:"processed"`
	Total     int             `json:"total"`
	Results   []DtrResponse   `json:"results"`
	Errors    []BulkItemError `json:"errors"`
}
