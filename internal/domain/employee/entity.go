package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID             string
	CompanyID      string
	FullName       string
	Email          string
	Position       *string
	EmploymentType EmploymentType
	// PayRate is the monthly salary for regular employees and the hourly
	// rate for contract and project-based employees.
	PayRate   decimal.Decimal
	HireDate  time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	CompanyName *string
}

type EmploymentType string

const (
	EmploymentTypeRegular  EmploymentType = "regular"
	EmploymentTypeContract EmploymentType = "contract"
	EmploymentTypeProject  EmploymentType = "project"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsMonthlyPaid reports whether PayRate is a monthly salary.
func (e Employee) IsMonthlyPaid() bool {
	return e.EmploymentType == EmploymentTypeRegular
}
