package payroll

import (
	"context"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
)

type Repository interface {
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, int64, error)
	Delete(ctx context.Context, id string) error

	// ExistsForEmployeePeriod backs duplicate prevention during generation.
	ExistsForEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	MarkProcessed(ctx context.Context, id string, processedBy string, at time.Time) error
	MarkPaid(ctx context.Context, id string, at time.Time) error
}

type Service interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// ProcessDtr prices a single approved time record immediately and creates
	// a pending payroll covering just that record's date.
	ProcessDtr(ctx context.Context, dtrID string) (PayrollResponse, error)
	BulkProcessDtrs(ctx context.Context, req dtr.BulkRequest) (BulkProcessResult, error)

	Get(ctx context.Context, id string) (PayrollResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	Process(ctx context.Context, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error

	// Self service
	ListOwn(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
}
