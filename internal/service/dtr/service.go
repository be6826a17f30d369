package dtr

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/database"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/jwt"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/peoplekit/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type DtrServiceImpl struct {
	db           *database.DB
	dtrRepo      dtr.Repository
	employeeRepo employee.Repository
	activityRepo activity.Repository
}

func NewDtrService(db *database.DB, dtrRepo dtr.Repository, employeeRepo employee.Repository, activityRepo activity.Repository) dtr.Service {
	return &DtrServiceImpl{
		db:           db,
		dtrRepo:      dtrRepo,
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
	}
}

func toDtrResponse(d dtr.Dtr) dtr.DtrResponse {
	res := dtr.DtrResponse{
		ID:              d.ID,
		EmployeeID:      d.EmployeeID,
		EmployeeName:    d.EmployeeName,
		Date:            d.Date.Format(time.DateOnly),
		TimeIn:          d.TimeIn,
		TimeOut:         d.TimeOut,
		BreakHours:      d.BreakHours,
		RegularHours:    d.RegularHours,
		OvertimeHours:   d.OvertimeHours,
		Status:          string(d.Status),
		SubmittedAt:     d.SubmittedAt.Format(time.RFC3339),
		ApprovedBy:      d.ApprovedBy,
		RejectionReason: d.RejectionReason,
		PayrollID:       d.PayrollID,
	}
	if d.ApprovedAt != nil {
		approvedAt := d.ApprovedAt.Format(time.RFC3339)
		res.ApprovedAt = &approvedAt
	}
	return res
}

// canActOn reports whether the actor may create or modify records for the
// employee. Managers and admins always can; everyone else only for their own
// linked employee.
func canActOn(actor jwt.Actor, employeeID string) bool {
	if actor.Role.CanManage() {
		return true
	}
	return actor.EmployeeID != nil && *actor.EmployeeID == employeeID
}

// Submit implements dtr.Service.
func (s *DtrServiceImpl) Submit(ctx context.Context, req dtr.SubmitDtrRequest) (dtr.DtrResponse, error) {
	if err := req.Validate(); err != nil {
		return dtr.DtrResponse{}, err
	}

	employeeData, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if employeeData.Status != employee.StatusActive {
		return dtr.DtrResponse{}, employee.ErrEmployeeInactive
	}

	breakHours := dtr.DefaultBreakHours
	if req.BreakHours != nil {
		breakHours = *req.BreakHours
	}
	overtimeHours := decimal.Zero
	if req.OvertimeHours != nil {
		overtimeHours = *req.OvertimeHours
	}

	regularHours, err := dtr.ComputeRegularHours(req.TimeIn, req.TimeOut, breakHours)
	if err != nil {
		return dtr.DtrResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !canActOn(actor, req.EmployeeID) {
		return dtr.DtrResponse{}, user.ErrManagerAccessRequired
	}

	date, _ := validator.IsValidDate(req.Date)

	var created dtr.Dtr
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.dtrRepo.Create(txCtx, dtr.Dtr{
			EmployeeID:    req.EmployeeID,
			Date:          date,
			TimeIn:        req.TimeIn,
			TimeOut:       req.TimeOut,
			BreakHours:    breakHours,
			RegularHours:  regularHours,
			OvertimeHours: overtimeHours,
			Status:        dtr.StatusPending,
			SubmittedAt:   time.Now(),
		})
		if err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionDtrSubmitted,
			Description: fmt.Sprintf("submitted time record %s for employee %s on %s", created.ID, req.EmployeeID, req.Date),
		})
	})
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	created.EmployeeName = &employeeData.FullName

	return toDtrResponse(created), nil
}

// Get implements dtr.Service.
func (s *DtrServiceImpl) Get(ctx context.Context, id string) (dtr.DtrResponse, error) {
	d, err := s.dtrRepo.GetByID(ctx, id)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	return toDtrResponse(d), nil
}

// List implements dtr.Service.
func (s *DtrServiceImpl) List(ctx context.Context, filter dtr.DtrFilter) (dtr.ListDtrResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.dtrRepo.List(ctx, filter)
	if err != nil {
		return dtr.ListDtrResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	data := make([]dtr.DtrResponse, 0, len(records))
	for _, d := range records {
		data = append(data, toDtrResponse(d))
	}

	return dtr.ListDtrResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements dtr.Service. Only pending and rejected records may be
// edited; worked hours are recomputed from the resulting clock pair.
func (s *DtrServiceImpl) Update(ctx context.Context, req dtr.UpdateDtrRequest) (dtr.DtrResponse, error) {
	if err := req.Validate(); err != nil {
		return dtr.DtrResponse{}, err
	}

	record, err := s.dtrRepo.GetByID(ctx, req.ID)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !record.Status.IsEditable() {
		return dtr.DtrResponse{}, dtr.ErrNotEditable
	}

	if req.TimeIn != nil {
		record.TimeIn = *req.TimeIn
	}
	if req.TimeOut != nil {
		record.TimeOut = *req.TimeOut
	}
	if req.BreakHours != nil {
		record.BreakHours = *req.BreakHours
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}

	record.RegularHours, err = dtr.ComputeRegularHours(record.TimeIn, record.TimeOut, record.BreakHours)
	if err != nil {
		return dtr.DtrResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !canActOn(actor, record.EmployeeID) {
		return dtr.DtrResponse{}, user.ErrManagerAccessRequired
	}

	var updated dtr.Dtr
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		updated, err = s.dtrRepo.Update(txCtx, record)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionDtrUpdated,
			Description: fmt.Sprintf("updated time record %s", record.ID),
		})
	})
	if err != nil {
		return dtr.DtrResponse{}, err
	}

	return toDtrResponse(updated), nil
}

// Delete implements dtr.Service.
func (s *DtrServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.dtrRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !record.Status.IsEditable() {
		return dtr.ErrNotEditable
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !canActOn(actor, record.EmployeeID) {
		return user.ErrManagerAccessRequired
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.dtrRepo.Delete(txCtx, id); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionDtrDeleted,
			Description: fmt.Sprintf("deleted time record %s", id),
		})
	})
}

// Approve implements dtr.Service.
func (s *DtrServiceImpl) Approve(ctx context.Context, id string) (dtr.DtrResponse, error) {
	return s.review(ctx, id, dtr.StatusApproved, nil)
}

// Reject implements dtr.Service.
func (s *DtrServiceImpl) Reject(ctx context.Context, req dtr.RejectDtrRequest) (dtr.DtrResponse, error) {
	if validator.IsEmpty(req.Reason) {
		return dtr.DtrResponse{}, dtr.ErrRejectionReasonNeeded
	}
	return s.review(ctx, req.ID, dtr.StatusRejected, &req.Reason)
}

// review applies a pending -> approved|rejected transition with an audit entry.
func (s *DtrServiceImpl) review(ctx context.Context, id string, next dtr.Status, reason *string) (dtr.DtrResponse, error) {
	record, err := s.dtrRepo.GetByID(ctx, id)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !record.Status.CanTransitionTo(next) {
		return dtr.DtrResponse{}, dtr.ErrNotPending
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !actor.Role.CanManage() {
		return dtr.DtrResponse{}, user.ErrManagerAccessRequired
	}

	action := activity.ActionDtrApproved
	var approvedBy *string
	if next == dtr.StatusApproved {
		approvedBy = &actor.UserID
	} else {
		action = activity.ActionDtrRejected
	}

	var updated dtr.Dtr
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		updated, err = s.dtrRepo.SetStatus(txCtx, id, next, approvedBy, reason)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      action,
			Description: fmt.Sprintf("time record %s moved to %s", id, next),
		})
	})
	if err != nil {
		return dtr.DtrResponse{}, err
	}

	return toDtrResponse(updated), nil
}

// RequestRevision implements dtr.Service. A rejected record returns to
// pending with its approval fields and rejection reason cleared.
func (s *DtrServiceImpl) RequestRevision(ctx context.Context, id string) (dtr.DtrResponse, error) {
	record, err := s.dtrRepo.GetByID(ctx, id)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !record.Status.CanTransitionTo(dtr.StatusPending) {
		return dtr.DtrResponse{}, dtr.ErrNotRejected
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if !canActOn(actor, record.EmployeeID) {
		return dtr.DtrResponse{}, user.ErrManagerAccessRequired
	}

	var updated dtr.Dtr
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		updated, err = s.dtrRepo.SetStatus(txCtx, id, dtr.StatusPending, nil, nil)
		if err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionDtrRevision,
			Description: fmt.Sprintf("time record %s returned for revision", id),
		})
	})
	if err != nil {
		return dtr.DtrResponse{}, err
	}

	return toDtrResponse(updated), nil
}

// BulkApprove implements dtr.Service. Items fail independently; the batch
// never aborts on a single bad record.
func (s *DtrServiceImpl) BulkApprove(ctx context.Context, req dtr.BulkRequest) (dtr.BulkResult, error) {
	return s.bulkReview(ctx, req, dtr.StatusApproved)
}

// BulkReject implements dtr.Service.
func (s *DtrServiceImpl) BulkReject(ctx context.Context, req dtr.BulkRequest) (dtr.BulkResult, error) {
	if req.Reason == nil || validator.IsEmpty(*req.Reason) {
		return dtr.BulkResult{}, dtr.ErrRejectionReasonNeeded
	}
	return s.bulkReview(ctx, req, dtr.StatusRejected)
}

func (s *DtrServiceImpl) bulkReview(ctx context.Context, req dtr.BulkRequest, next dtr.Status) (dtr.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return dtr.BulkResult{}, err
	}

	result := dtr.BulkResult{
		Total:   len(req.DtrIDs),
		Results: []dtr.DtrResponse{},
		Errors:  []dtr.BulkItemError{},
	}

	for _, id := range req.DtrIDs {
		var res dtr.DtrResponse
		var err error
		if next == dtr.StatusApproved {
			res, err = s.Approve(ctx, id)
		} else {
			res, err = s.Reject(ctx, dtr.RejectDtrRequest{ID: id, Reason: *req.Reason})
		}
		if err != nil {
			result.Errors = append(result.Errors, dtr.BulkItemError{ID: id, Message: err.Error()})
			continue
		}
		result.Processed++
		result.Results = append(result.Results, res)
	}

	result.Success = result.Processed == result.Total
	return result, nil
}

// SubmitOwn implements dtr.Service. The employee id always comes from the
// actor's linked employee, never from the request body.
func (s *DtrServiceImpl) SubmitOwn(ctx context.Context, req dtr.SubmitDtrRequest) (dtr.DtrResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.DtrResponse{}, err
	}
	if actor.EmployeeID == nil {
		return dtr.DtrResponse{}, user.ErrNoLinkedEmployee
	}

	req.EmployeeID = *actor.EmployeeID
	return s.Submit(ctx, req)
}

// ListOwn implements dtr.Service.
func (s *DtrServiceImpl) ListOwn(ctx context.Context, filter dtr.DtrFilter) (dtr.ListDtrResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return dtr.ListDtrResponse{}, err
	}
	if actor.EmployeeID == nil {
		return dtr.ListDtrResponse{}, user.ErrNoLinkedEmployee
	}

	filter.EmployeeID = actor.EmployeeID
	return s.List(ctx, filter)
}
