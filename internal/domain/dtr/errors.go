package dtr

import "errors"

var (
	ErrDtrNotFound           = errors.New("daily time record not found")
	ErrDtrAlreadyExists      = errors.New("daily time record already exists for this employee and date")
	ErrInvalidClockTime      = errors.New("time must be in HH:MM 24-hour format")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrNotPending            = errors.New("record is not pending")
	ErrNotApproved           = errors.New("record is not approved")
	ErrNotRejected           = errors.New("record is not rejected")
	ErrNotEditable           = errors.New("record can no longer be modified")
	ErrRejectionReasonNeeded = errors.New("rejection reason is required")
)
