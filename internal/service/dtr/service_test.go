package dtr

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// actorContext builds a request context carrying access token claims, the
// same shape the jwtauth verifier middleware produces.
func actorContext(t *testing.T, userID string, role user.Role, employeeID *string) context.Context {
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("email", userID+"@example.com"))
	require.NoError(t, tok.Set("role", string(role)))
	require.NoError(t, tok.Set("type", "access"))
	if employeeID != nil {
		require.NoError(t, tok.Set("employee_id", *employeeID))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeDtrRepo struct {
	records map[string]dtr.Dtr
	seq     int
}

func newFakeDtrRepo() *fakeDtrRepo {
	return &fakeDtrRepo{records: make(map[string]dtr.Dtr)}
}

func (f *fakeDtrRepo) Create(ctx context.Context, d dtr.Dtr) (dtr.Dtr, error) {
	for _, existing := range f.records {
		if existing.EmployeeID == d.EmployeeID && existing.Date.Equal(d.Date) {
			return dtr.Dtr{}, dtr.ErrDtrAlreadyExists
		}
	}
	f.seq++
	d.ID = fmt.Sprintf("dtr-%d", f.seq)
	f.records[d.ID] = d
	return d, nil
}

func (f *fakeDtrRepo) GetByID(ctx context.Context, id string) (dtr.Dtr, error) {
	d, ok := f.records[id]
	if !ok {
		return dtr.Dtr{}, dtr.ErrDtrNotFound
	}
	return d, nil
}

func (f *fakeDtrRepo) List(ctx context.Context, filter dtr.DtrFilter) ([]dtr.Dtr, int64, error) {
	out := []dtr.Dtr{}
	for _, d := range f.records {
		if filter.EmployeeID != nil && d.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(d.Status) != *filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDtrRepo) Update(ctx context.Context, d dtr.Dtr) (dtr.Dtr, error) {
	if _, ok := f.records[d.ID]; !ok {
		return dtr.Dtr{}, dtr.ErrDtrNotFound
	}
	f.records[d.ID] = d
	return d, nil
}

func (f *fakeDtrRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return dtr.ErrDtrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeDtrRepo) SetStatus(ctx context.Context, id string, status dtr.Status, approvedBy *string, reason *string) (dtr.Dtr, error) {
	d, ok := f.records[id]
	if !ok {
		return dtr.Dtr{}, dtr.ErrDtrNotFound
	}
	d.Status = status
	switch status {
	case dtr.StatusApproved:
		now := time.Now()
		d.ApprovedBy = approvedBy
		d.ApprovedAt = &now
	case dtr.StatusRejected:
		d.RejectionReason = reason
	case dtr.StatusPending:
		d.ApprovedBy = nil
		d.ApprovedAt = nil
		d.RejectionReason = nil
	}
	f.records[id] = d
	return d, nil
}

func (f *fakeDtrRepo) ListApprovedForPeriod(ctx context.Context, employeeID string, start, end time.Time) ([]dtr.Dtr, error) {
	out := []dtr.Dtr{}
	for _, d := range f.records {
		if d.EmployeeID != employeeID || d.Status != dtr.StatusApproved || d.PayrollID != nil {
			continue
		}
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDtrRepo) AssignPayroll(ctx context.Context, ids []string, payrollID string) error {
	for _, id := range ids {
		d, ok := f.records[id]
		if !ok || d.Status != dtr.StatusApproved {
			return dtr.ErrNotApproved
		}
		d.PayrollID = &payrollID
		d.Status = dtr.StatusProcessing
		f.records[id] = d
	}
	return nil
}

func (f *fakeDtrRepo) AdvanceByPayroll(ctx context.Context, payrollID string, from, to dtr.Status) (int64, error) {
	var n int64
	for id, d := range f.records {
		if d.PayrollID != nil && *d.PayrollID == payrollID && d.Status == from {
			d.Status = to
			f.records[id] = d
			n++
		}
	}
	return n, nil
}

func (f *fakeDtrRepo) ReleaseByPayroll(ctx context.Context, payrollID string) error {
	for id, d := range f.records {
		if d.PayrollID != nil && *d.PayrollID == payrollID {
			d.PayrollID = nil
			d.Status = dtr.StatusApproved
			f.records[id] = d
		}
	}
	return nil
}

func (f *fakeDtrRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, d := range f.records {
		if d.Status == dtr.StatusPending && d.SubmittedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	out := []employee.Employee{}
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, companyID *string) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, e := range f.employees {
		if e.Status != employee.StatusActive {
			continue
		}
		if companyID != nil && e.CompanyID != *companyID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if _, ok := f.employees[req.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

type fakeActivityRepo struct {
	entries []activity.Activity
}

func (f *fakeActivityRepo) Create(ctx context.Context, a activity.Activity) error {
	f.entries = append(f.entries, a)
	return nil
}

func (f *fakeActivityRepo) List(ctx context.Context, filter activity.Filter) ([]activity.Activity, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func activeEmployee(id string) employee.Employee {
	return employee.Employee{
		ID:             id,
		CompanyID:      "company-1",
		FullName:       "Test Employee",
		Email:          id + "@example.com",
		EmploymentType: employee.EmploymentTypeRegular,
		PayRate:        decimal.NewFromInt(20000),
		Status:         employee.StatusActive,
	}
}

func TestDtrService_Submit(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	activityRepo := &fakeActivityRepo{}
	svc := NewDtrService(nil, dtrRepo, employeeRepo, activityRepo)

	employeeID := "emp-1"
	ctx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	res, err := svc.Submit(ctx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	// Default one hour break, 8 worked hours, pending status.
	assert.Equal(t, "8", res.RegularHours.String())
	assert.Equal(t, "1", res.BreakHours.String())
	assert.Equal(t, string(dtr.StatusPending), res.Status)

	require.Len(t, activityRepo.entries, 1)
	assert.Equal(t, activity.ActionDtrSubmitted, activityRepo.entries[0].Action)
	assert.Equal(t, "user-1", activityRepo.entries[0].UserID)
}

func TestDtrService_Submit_DuplicateDate(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	employeeID := "emp-1"
	ctx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	req := dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	}

	_, err := svc.Submit(ctx, req)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, req)
	assert.ErrorIs(t, err, dtr.ErrDtrAlreadyExists)
}

func TestDtrService_Submit_InactiveEmployee(t *testing.T) {
	emp := activeEmployee("emp-1")
	emp.Status = employee.StatusInactive
	svc := NewDtrService(nil, newFakeDtrRepo(), newFakeEmployeeRepo(emp), &fakeActivityRepo{})

	employeeID := "emp-1"
	ctx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	_, err := svc.Submit(ctx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestDtrService_Update_RecomputesHours(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	employeeID := "emp-1"
	ctx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	created, err := svc.Submit(ctx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	newTimeOut := "18:00"
	updated, err := svc.Update(ctx, dtr.UpdateDtrRequest{ID: created.ID, TimeOut: &newTimeOut})
	require.NoError(t, err)
	assert.Equal(t, "9", updated.RegularHours.String())
}

func TestDtrService_Update_NotEditable(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	employeeID := "emp-1"
	staffCtx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	created, err := svc.Submit(staffCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	managerCtx := actorContext(t, "manager-1", user.RoleManager, nil)
	_, err = svc.Approve(managerCtx, created.ID)
	require.NoError(t, err)

	newTimeOut := "18:00"
	_, err = svc.Update(staffCtx, dtr.UpdateDtrRequest{ID: created.ID, TimeOut: &newTimeOut})
	assert.ErrorIs(t, err, dtr.ErrNotEditable)

	err = svc.Delete(staffCtx, created.ID)
	assert.ErrorIs(t, err, dtr.ErrNotEditable)
}

func TestDtrService_Approve(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	activityRepo := &fakeActivityRepo{}
	svc := NewDtrService(nil, dtrRepo, employeeRepo, activityRepo)

	employeeID := "emp-1"
	staffCtx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	created, err := svc.Submit(staffCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	// Staff cannot approve.
	_, err = svc.Approve(staffCtx, created.ID)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	managerCtx := actorContext(t, "manager-1", user.RoleManager, nil)
	approved, err := svc.Approve(managerCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(dtr.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "manager-1", *approved.ApprovedBy)

	// A second approval is an invalid transition.
	_, err = svc.Approve(managerCtx, created.ID)
	assert.ErrorIs(t, err, dtr.ErrNotPending)
}

func TestDtrService_RejectAndRevision(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	employeeID := "emp-1"
	staffCtx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	created, err := svc.Submit(staffCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1",
		Date:       "2025-06-02",
		TimeIn:     "08:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	managerCtx := actorContext(t, "manager-1", user.RoleManager, nil)

	_, err = svc.Reject(managerCtx, dtr.RejectDtrRequest{ID: created.ID})
	assert.ErrorIs(t, err, dtr.ErrRejectionReasonNeeded)

	rejected, err := svc.Reject(managerCtx, dtr.RejectDtrRequest{ID: created.ID, Reason: "hours look wrong"})
	require.NoError(t, err)
	assert.Equal(t, string(dtr.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "hours look wrong", *rejected.RejectionReason)

	// Revision returns it to pending with review fields cleared.
	revised, err := svc.RequestRevision(staffCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(dtr.StatusPending), revised.Status)
	assert.Nil(t, revised.ApprovedBy)
	assert.Nil(t, revised.RejectionReason)
}

func TestDtrService_BulkApprove_PartialFailure(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"), activeEmployee("emp-2"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	managerCtx := actorContext(t, "manager-1", user.RoleManager, nil)
	first, err := svc.Submit(managerCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1", Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	require.NoError(t, err)
	second, err := svc.Submit(managerCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-2", Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	require.NoError(t, err)

	result, err := svc.BulkApprove(managerCtx, dtr.BulkRequest{
		DtrIDs: []string{first.ID, second.ID, "missing-id"},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "missing-id", result.Errors[0].ID)
	assert.Equal(t, result.Total, result.Processed+len(result.Errors))
}

func TestDtrService_SubmitOwn(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	// No linked employee on the account.
	unlinkedCtx := actorContext(t, "user-1", user.RoleStaff, nil)
	_, err := svc.SubmitOwn(unlinkedCtx, dtr.SubmitDtrRequest{
		Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	assert.ErrorIs(t, err, user.ErrNoLinkedEmployee)

	employeeID := "emp-1"
	linkedCtx := actorContext(t, "user-1", user.RoleStaff, &employeeID)
	res, err := svc.SubmitOwn(linkedCtx, dtr.SubmitDtrRequest{
		// Any employee_id in the body is ignored.
		EmployeeID: "someone-else",
		Date:       "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", res.EmployeeID)
}

func TestDtrService_StaffCannotActOnOthersRecords(t *testing.T) {
	dtrRepo := newFakeDtrRepo()
	employeeRepo := newFakeEmployeeRepo(activeEmployee("emp-1"), activeEmployee("emp-2"))
	svc := NewDtrService(nil, dtrRepo, employeeRepo, &fakeActivityRepo{})

	employeeID := "emp-1"
	staffCtx := actorContext(t, "user-1", user.RoleStaff, &employeeID)

	// Submitting for another employee is refused.
	_, err := svc.Submit(staffCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-2", Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	managerCtx := actorContext(t, "manager-1", user.RoleManager, nil)
	other, err := svc.Submit(managerCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-2", Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	require.NoError(t, err)

	// So are edits and deletes of another employee's record.
	newTimeOut := "18:00"
	_, err = svc.Update(staffCtx, dtr.UpdateDtrRequest{ID: other.ID, TimeOut: &newTimeOut})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	err = svc.Delete(staffCtx, other.ID)
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	// The staff member's own record stays editable.
	own, err := svc.Submit(staffCtx, dtr.SubmitDtrRequest{
		EmployeeID: "emp-1", Date: "2025-06-02", TimeIn: "08:00", TimeOut: "17:00",
	})
	require.NoError(t, err)
	_, err = svc.Update(staffCtx, dtr.UpdateDtrRequest{ID: own.ID, TimeOut: &newTimeOut})
	assert.NoError(t, err)
}
