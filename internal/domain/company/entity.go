package company

import "time"

type Company struct {
	ID            string
	Name          string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	Address       *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)
