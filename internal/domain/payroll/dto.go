package payroll

import (
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	CompanyID   *string  `json:"company_id,omitempty"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a date in YYYY-MM-DD format"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollResponse struct {
	Generated []PayrollResponse `json:"generated"`
	Skipped   []SkippedEmployee `json:"skipped"`
}

type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type PayrollResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
	ProcessedBy        *string         `json:"processed_by,omitempty"`
	ProcessedAt        *string         `json:"processed_at,omitempty"`
	PaidAt             *string         `json:"paid_at,omitempty"`
}

// BulkProcessResult mirrors the bulk DTR envelope for payroll creation:
// processed + len(errors) == total.
type BulkProcessResult struct {
	Success   bool              `json:"success"`
	Processed int               `json:"processed"`
	Total     int               `json:"total"`
	Results   []PayrollResponse `json:"results"`
	Errors    []BulkItemError   `json:"errors"`
}

type BulkItemError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type PayrollFilter struct {
	EmployeeID  *string
	Status      *string
	PeriodStart *string
	PeriodEnd   *string
	Page        int
	Limit       int
}

type ListPayrollResponse struct {
	Data       []PayrollResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
