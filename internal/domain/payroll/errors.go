package payroll

import "errors"

var (
	ErrPayrollNotFound     = errors.New("payroll record not found")
	ErrPayrollExists       = errors.New("payroll already exists for this employee and period")
	ErrPayrollNotPending   = errors.New("payroll is not pending")
	ErrPayrollNotProcessed = errors.New("payroll is not processed")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrNoApprovedDtrs      = errors.New("no approved time records in the period")
	ErrCannotDeleteRecord  = errors.New("only pending payrolls can be deleted")
	ErrInvalidTransition   = errors.New("invalid payroll status transition")
)
