package dtr

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d Dtr) (Dtr, error)
	GetByID(ctx context.Context, id string) (Dtr, error)
	List(ctx context.Context, filter DtrFilter) ([]Dtr, int64, error)
	Update(ctx context.Context, d Dtr) (Dtr, error)
	Delete(ctx context.Context, id string) error

	// SetStatus applies a single lifecycle transition. Approval fields are
	// written on approve and cleared on revision; reason is written on reject.
	SetStatus(ctx context.Context, id string, status Status, approvedBy *string, reason *string) (Dtr, error)

	// ListApprovedForPeriod returns an employee's approved, unconsumed
	// records whose date falls within [start, end].
	ListApprovedForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Dtr, error)

	// AssignPayroll stamps payroll_id on the given records and moves them to
	// the processing status.
	AssignPayroll(ctx context.Context, ids []string, payrollID string) error

	// AdvanceByPayroll moves every record consumed by the payroll from one
	// status to the next and returns the number of rows changed.
	AdvanceByPayroll(ctx context.Context, payrollID string, from, to Status) (int64, error)

	// ReleaseByPayroll detaches a deleted payroll's records and returns them
	// to the approved status.
	ReleaseByPayroll(ctx context.Context, payrollID string) error

	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Service interface {
	Submit(ctx context.Context, req SubmitDtrRequest) (DtrResponse, error)
	Get(ctx context.Context, id string) (DtrResponse, error)
	List(ctx context.Context, filter DtrFilter) (ListDtrResponse, error)
	Update(ctx context.Context, req UpdateDtrRequest) (DtrResponse, error)
	Delete(ctx context.Context, id string) error

	Approve(ctx context.Context, id string) (DtrResponse, error)
	Reject(ctx context.Context, req RejectDtrRequest) (DtrResponse, error)
	RequestRevision(ctx context.Context, id string) (DtrResponse, error)

	BulkApprove(ctx context.Context, req BulkRequest) (BulkResult, error)
	BulkReject(ctx context.Context, req BulkRequest) (BulkResult, error)

	// Self service
	SubmitOwn(ctx context.Context, req SubmitDtrRequest) (DtrResponse, error)
	ListOwn(ctx context.Context, filter DtrFilter) (ListDtrResponse, error)
}
