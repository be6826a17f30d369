package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one employee's pay for one period.
type Payroll struct {
	ID                 string
	EmployeeID         string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TotalRegularHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	GrossPay           decimal.Decimal
	TotalDeductions    decimal.Decimal
	NetPay             decimal.Decimal
	Status             Status
	ProcessedBy        *string
	ProcessedAt        *time.Time
	PaidAt             *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
)

// CanTransitionTo reports whether the payroll lifecycle permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessed
	case StatusProcessed:
		return next == StatusPaid
	}
	return false
}
