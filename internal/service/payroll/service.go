package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/domain/employee"
	"github.com/peoplekit/payroll-backend-go/internal/domain/payroll"
	"github.com/peoplekit/payroll-backend-go/internal/domain/user"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/database"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/jwt"
	"github.com/peoplekit/payroll-backend-go/internal/pkg/validator"
	"github.com/peoplekit/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.Repository
	dtrRepo      dtr.Repository
	employeeRepo employee.Repository
	activityRepo activity.Repository
}

func NewPayrollService(db *database.DB, payrollRepo payroll.Repository, dtrRepo dtr.Repository, employeeRepo employee.Repository, activityRepo activity.Repository) payroll.Service {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		dtrRepo:      dtrRepo,
		employeeRepo: employeeRepo,
		activityRepo: activityRepo,
	}
}

func toPayrollResponse(p payroll.Payroll) payroll.PayrollResponse {
	res := payroll.PayrollResponse{
		ID:                 p.ID,
		EmployeeID:         p.EmployeeID,
		EmployeeName:       p.EmployeeName,
		PeriodStart:        p.PeriodStart.Format(time.DateOnly),
		PeriodEnd:          p.PeriodEnd.Format(time.DateOnly),
		TotalRegularHours:  p.TotalRegularHours,
		TotalOvertimeHours: p.TotalOvertimeHours,
		GrossPay:           p.GrossPay,
		TotalDeductions:    p.TotalDeductions,
		NetPay:             p.NetPay,
		Status:             string(p.Status),
		ProcessedBy:        p.ProcessedBy,
	}
	if p.ProcessedAt != nil {
		processedAt := p.ProcessedAt.Format(time.RFC3339)
		res.ProcessedAt = &processedAt
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.Format(time.RFC3339)
		res.PaidAt = &paidAt
	}
	return res
}

// Generate implements payroll.Service. One payroll is created per employee
// with approved, unconsumed time records in the period; employees that
// already have a payroll for the period, or have nothing to pay, are
// reported as skipped rather than failing the run.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}
	if !actor.Role.CanManage() {
		return payroll.GeneratePayrollResponse{}, user.ErrManagerAccessRequired
	}

	start, _ := validator.IsValidDate(req.PeriodStart)
	end, _ := validator.IsValidDate(req.PeriodEnd)

	employees, err := s.resolveEmployees(ctx, req)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	res := payroll.GeneratePayrollResponse{
		Generated: []payroll.PayrollResponse{},
		Skipped:   []payroll.SkippedEmployee{},
	}

	for _, emp := range employees {
		created, skipReason, err := s.generateForEmployee(ctx, actor, emp, start, end)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, err
		}
		if skipReason != "" {
			res.Skipped = append(res.Skipped, payroll.SkippedEmployee{EmployeeID: emp.ID, Reason: skipReason})
			continue
		}
		res.Generated = append(res.Generated, created)
	}

	return res, nil
}

func (s *PayrollServiceImpl) resolveEmployees(ctx context.Context, req payroll.GeneratePayrollRequest) ([]employee.Employee, error) {
	if len(req.EmployeeIDs) > 0 {
		employees := make([]employee.Employee, 0, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			emp, err := s.employeeRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			employees = append(employees, emp)
		}
		return employees, nil
	}

	employees, err := s.employeeRepo.ListActive(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return employees, nil
}

func (s *PayrollServiceImpl) generateForEmployee(ctx context.Context, actor jwt.Actor, emp employee.Employee, start, end time.Time) (payroll.PayrollResponse, string, error) {
	// ListActive already filters, but explicitly requested employees may be
	// inactive.
	if emp.Status != employee.StatusActive {
		return payroll.PayrollResponse{}, employee.ErrEmployeeInactive.Error(), nil
	}

	exists, err := s.payrollRepo.ExistsForEmployeePeriod(ctx, emp.ID, start, end)
	if err != nil {
		return payroll.PayrollResponse{}, "", fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return payroll.PayrollResponse{}, payroll.ErrPayrollExists.Error(), nil
	}

	records, err := s.dtrRepo.ListApprovedForPeriod(ctx, emp.ID, start, end)
	if err != nil {
		return payroll.PayrollResponse{}, "", fmt.Errorf("failed to list approved time records: %w", err)
	}
	if len(records) == 0 {
		return payroll.PayrollResponse{}, payroll.ErrNoApprovedDtrs.Error(), nil
	}

	totalRegular := decimal.Zero
	totalOvertime := decimal.Zero
	dtrIDs := make([]string, 0, len(records))
	for _, r := range records {
		totalRegular = totalRegular.Add(r.RegularHours)
		totalOvertime = totalOvertime.Add(r.OvertimeHours)
		dtrIDs = append(dtrIDs, r.ID)
	}

	breakdown := payroll.ComputePeriod(emp, totalRegular, totalOvertime, start, end)

	var created payroll.Payroll
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.payrollRepo.Create(txCtx, payroll.Payroll{
			EmployeeID:         emp.ID,
			PeriodStart:        start,
			PeriodEnd:          end,
			TotalRegularHours:  totalRegular,
			TotalOvertimeHours: totalOvertime,
			GrossPay:           breakdown.GrossPay,
			TotalDeductions:    breakdown.Deductions,
			NetPay:             breakdown.NetPay,
			Status:             payroll.StatusPending,
		})
		if err != nil {
			return err
		}

		if err := s.dtrRepo.AssignPayroll(txCtx, dtrIDs, created.ID); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionPayrollGenerated,
			Description: fmt.Sprintf("generated payroll %s for employee %s (%s to %s)", created.ID, emp.ID, start.Format(time.DateOnly), end.Format(time.DateOnly)),
		})
	})
	if err != nil {
		return payroll.PayrollResponse{}, "", err
	}
	created.EmployeeName = &emp.FullName

	return toPayrollResponse(created), "", nil
}

// ProcessDtr implements payroll.Service.
func (s *PayrollServiceImpl) ProcessDtr(ctx context.Context, dtrID string) (payroll.PayrollResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !actor.Role.CanManage() {
		return payroll.PayrollResponse{}, user.ErrManagerAccessRequired
	}

	record, err := s.dtrRepo.GetByID(ctx, dtrID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if record.Status != dtr.StatusApproved {
		return payroll.PayrollResponse{}, dtr.ErrNotApproved
	}

	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	breakdown := payroll.ComputeImmediate(record.RegularHours, record.OvertimeHours, emp.PayRate)

	var created payroll.Payroll
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.payrollRepo.Create(txCtx, payroll.Payroll{
			EmployeeID:         record.EmployeeID,
			PeriodStart:        record.Date,
			PeriodEnd:          record.Date,
			TotalRegularHours:  record.RegularHours,
			TotalOvertimeHours: record.OvertimeHours,
			GrossPay:           breakdown.GrossPay,
			TotalDeductions:    breakdown.Deductions,
			NetPay:             breakdown.NetPay,
			Status:             payroll.StatusPending,
		})
		if err != nil {
			return err
		}

		if err := s.dtrRepo.AssignPayroll(txCtx, []string{record.ID}, created.ID); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionPayrollGenerated,
			Description: fmt.Sprintf("processed time record %s into payroll %s", record.ID, created.ID),
		})
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	created.EmployeeName = &emp.FullName

	return toPayrollResponse(created), nil
}

// BulkProcessDtrs implements payroll.Service. Items fail independently.
func (s *PayrollServiceImpl) BulkProcessDtrs(ctx context.Context, req dtr.BulkRequest) (payroll.BulkProcessResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkProcessResult{}, err
	}

	result := payroll.BulkProcessResult{
		Total:   len(req.DtrIDs),
		Results: []payroll.PayrollResponse{},
		Errors:  []payroll.BulkItemError{},
	}

	for _, id := range req.DtrIDs {
		res, err := s.ProcessDtr(ctx, id)
		if err != nil {
			result.Errors = append(result.Errors, payroll.BulkItemError{ID: id, Message: err.Error()})
			continue
		}
		result.Processed++
		result.Results = append(result.Results, res)
	}

	result.Success = result.Processed == result.Total
	return result, nil
}

// Get implements payroll.Service.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toPayrollResponse(p), nil
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	payrolls, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	data := make([]payroll.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		data = append(data, toPayrollResponse(p))
	}

	return payroll.ListPayrollResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Process implements payroll.Service. The payroll moves pending -> processed
// and its consumed time records advance processing -> processed with it.
func (s *PayrollServiceImpl) Process(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !actor.Role.CanManage() {
		return payroll.PayrollResponse{}, user.ErrManagerAccessRequired
	}

	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !p.Status.CanTransitionTo(payroll.StatusProcessed) {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotPending
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.MarkProcessed(txCtx, id, actor.UserID, time.Now()); err != nil {
			return err
		}

		if _, err := s.dtrRepo.AdvanceByPayroll(txCtx, id, dtr.StatusProcessing, dtr.StatusProcessed); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionPayrollProcessed,
			Description: fmt.Sprintf("processed payroll %s", id),
		})
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, id)
}

// MarkPaid implements payroll.Service. The payroll moves processed -> paid
// and its consumed time records advance with it.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !actor.Role.CanManage() {
		return payroll.PayrollResponse{}, user.ErrManagerAccessRequired
	}

	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	if !p.Status.CanTransitionTo(payroll.StatusPaid) {
		return payroll.PayrollResponse{}, payroll.ErrPayrollNotProcessed
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.MarkPaid(txCtx, id, time.Now()); err != nil {
			return err
		}

		if _, err := s.dtrRepo.AdvanceByPayroll(txCtx, id, dtr.StatusProcessed, dtr.StatusPaid); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionPayrollPaid,
			Description: fmt.Sprintf("marked payroll %s as paid", id),
		})
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return s.Get(ctx, id)
}

// Delete implements payroll.Service. Only pending payrolls can be deleted;
// their time records detach and return to approved so a later run can
// consume them again.
func (s *PayrollServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.Role.CanManage() {
		return user.ErrManagerAccessRequired
	}

	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Status != payroll.StatusPending {
		return payroll.ErrCannotDeleteRecord
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.dtrRepo.ReleaseByPayroll(txCtx, id); err != nil {
			return err
		}

		if err := s.payrollRepo.Delete(txCtx, id); err != nil {
			return err
		}

		return s.activityRepo.Create(txCtx, activity.Activity{
			UserID:      actor.UserID,
			Action:      activity.ActionPayrollDeleted,
			Description: fmt.Sprintf("deleted payroll %s", id),
		})
	})
}

// ListOwn implements payroll.Service.
func (s *PayrollServiceImpl) ListOwn(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollResponse{}, err
	}
	if actor.EmployeeID == nil {
		return payroll.ListPayrollResponse{}, user.ErrNoLinkedEmployee
	}

	filter.EmployeeID = actor.EmployeeID
	return s.List(ctx, filter)
}
