package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/domain/payroll"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	ProcessDtr(w http.ResponseWriter, r *http.Request)
	BulkProcessDtrs(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func payrollFilterFromQuery(r *http.Request) payroll.PayrollFilter {
	var filter payroll.PayrollFilter

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if periodStart := r.URL.Query().Get("period_start"); periodStart != "" {
		filter.PeriodStart = &periodStart
	}
	if periodEnd := r.URL.Query().Get("period_end"); periodEnd != "" {
		filter.PeriodEnd = &periodEnd
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	return filter
}

// Generate implements PayrollHandler.
func (p *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Generate payroll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := p.payrollService.Generate(r.Context(), req)
	if err != nil {
		slog.Error("Failed to generate payroll", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated successfully", res)
}

// ProcessDtr implements PayrollHandler.
func (p *PayrollHandlerImpl) ProcessDtr(w http.ResponseWriter, r *http.Request) {
	dtrID, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := p.payrollService.ProcessDtr(r.Context(), dtrID)
	if err != nil {
		slog.Error("Failed to process time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time record processed successfully", res)
}

// BulkProcessDtrs implements PayrollHandler.
func (p *PayrollHandlerImpl) BulkProcessDtrs(w http.ResponseWriter, r *http.Request) {
	var req dtr.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bulk process decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := p.payrollService.BulkProcessDtrs(r.Context(), req)
	if err != nil {
		slog.Error("Failed to bulk process time records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// List implements PayrollHandler.
func (p *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	res, err := p.payrollService.List(r.Context(), payrollFilterFromQuery(r))
	if err != nil {
		slog.Error("Failed to list payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// GetByID implements PayrollHandler.
func (p *PayrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := p.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// Process implements PayrollHandler.
func (p *PayrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := p.payrollService.Process(r.Context(), id)
	if err != nil {
		slog.Error("Failed to process payroll", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll processed successfully", res)
}

// MarkPaid implements PayrollHandler.
func (p *PayrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := p.payrollService.MarkPaid(r.Context(), id)
	if err != nil {
		slog.Error("Failed to mark payroll as paid", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", res)
}

// Delete implements PayrollHandler.
func (p *PayrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := p.payrollService.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete payroll", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted successfully", nil)
}

// ListOwn implements PayrollHandler.
func (p *PayrollHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	res, err := p.payrollService.ListOwn(r.Context(), payrollFilterFromQuery(r))
	if err != nil {
		slog.Error("Failed to list own payrolls", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}
