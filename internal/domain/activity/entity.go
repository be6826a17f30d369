package activity

import "time"

// Activity is one append-only audit log entry.
type Activity struct {
	ID          string
	UserID      string
	Action      string
	Description string
	CreatedAt   time.Time
}

// Action names recorded by the services.
const (
	ActionDtrSubmitted     = "dtr.submitted"
	ActionDtrUpdated       = "dtr.updated"
	ActionDtrDeleted       = "dtr.deleted"
	ActionDtrApproved      = "dtr.approved"
	ActionDtrRejected      = "dtr.rejected"
	ActionDtrRevision      = "dtr.revision_requested"
	ActionPayrollGenerated = "payroll.generated"
	ActionPayrollProcessed = "payroll.processed"
	ActionPayrollPaid      = "payroll.paid"
	ActionPayrollDeleted   = "payroll.deleted"
	ActionPendingDtrDigest = "dtr.pending_digest"
)
