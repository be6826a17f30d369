package dtr

import (
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Dtr is one employee's daily time record.
type Dtr struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     string
	TimeOut    string
	BreakHours decimal.Decimal
	// RegularHours is derived from TimeIn/TimeOut/BreakHours at submission
	// and never taken from the client.
	RegularHours    decimal.Decimal
	OvertimeHours   decimal.Decimal
	Status          Status
	SubmittedAt     time.Time
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	// PayrollID links the record to the payroll that consumed it.
	PayrollID *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusPaid       Status = "paid"
)

// transitions is the DTR lifecycle:
// pending -> approved|rejected, rejected -> pending (revision),
// approved -> processing -> processed -> paid.
var transitions = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusRejected},
	StatusRejected:   {StatusPending},
	StatusApproved:   {StatusProcessing},
	StatusProcessing: {StatusProcessed},
	StatusProcessed:  {StatusPaid},
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsEditable reports whether the record may still be changed or deleted.
func (s Status) IsEditable() bool {
	return s == StatusPending || s == StatusRejected
}

// DefaultBreakHours applies when a submission omits break_hours.
var DefaultBreakHours = decimal.NewFromInt(1)

const minutesPerDay = 24 * 60

// ComputeRegularHours derives worked hours from a clock-in/clock-out pair.
// A time-out earlier than time-in is treated as an overnight shift and wraps
// to the next day. The result is floored at zero.
func ComputeRegularHours(timeIn, timeOut string, breakHours decimal.Decimal) (decimal.Decimal, error) {
	if !validator.IsValidClock(timeIn) {
		return decimal.Zero, ErrInvalidClockTime
	}
	if !validator.IsValidClock(timeOut) {
		return decimal.Zero, ErrInvalidClockTime
	}

	minutes := validator.ClockMinutes(timeOut) - validator.ClockMinutes(timeIn)
	if minutes < 0 {
		minutes += minutesPerDay
	}

	worked := decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(60)).
		Sub(breakHours)
	if worked.IsNegative() {
		return decimal.Zero, nil
	}
	return worked, nil
}
