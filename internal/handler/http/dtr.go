package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/response"
)

type DtrHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	RequestRevision(w http.ResponseWriter, r *http.Request)
	BulkApprove(w http.ResponseWriter, r *http.Request)
	BulkReject(w http.ResponseWriter, r *http.Request)
	SubmitOwn(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
}

type DtrHandlerImpl struct {
	dtrService dtr.Service
}

func NewDtrHandler(dtrService dtr.Service) DtrHandler {
	return &DtrHandlerImpl{dtrService: dtrService}
}

func dtrFilterFromQuery(r *http.Request) dtr.DtrFilter {
	var filter dtr.DtrFilter

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if dateFrom := r.URL.Query().Get("date_from"); dateFrom != "" {
		filter.DateFrom = &dateFrom
	}
	if dateTo := r.URL.Query().Get("date_to"); dateTo != "" {
		filter.DateTo = &dateTo
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

// Submit implements DtrHandler.
func (d *DtrHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req dtr.SubmitDtrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit time record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := d.dtrService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Failed to submit time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time record submitted successfully", created)
}

// List implements DtrHandler.
func (d *DtrHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	res, err := d.dtrService.List(r.Context(), dtrFilterFromQuery(r))
	if err != nil {
		slog.Error("Failed to list time records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// GetByID implements DtrHandler.
func (d *DtrHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := d.dtrService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// Update implements DtrHandler.
func (d *DtrHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req dtr.UpdateDtrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update time record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req.ID = id

	res, err := d.dtrService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Failed to update time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record updated successfully", res)
}

// Delete implements DtrHandler.
func (d *DtrHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := d.dtrService.Delete(r.Context(), id); err != nil {
		slog.Error("Failed to delete time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record deleted successfully", nil)
}

// Approve implements DtrHandler.
func (d *DtrHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := d.dtrService.Approve(r.Context(), id)
	if err != nil {
		slog.Error("Failed to approve time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record approved successfully", res)
}

// Reject implements DtrHandler.
func (d *DtrHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req dtr.RejectDtrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject time record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	id, ok := urlID(w, r)
	if !ok {
		return
	}
	req.ID = id

	res, err := d.dtrService.Reject(r.Context(), req)
	if err != nil {
		slog.Error("Failed to reject time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record rejected successfully", res)
}

// RequestRevision implements DtrHandler.
func (d *DtrHandlerImpl) RequestRevision(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	res, err := d.dtrService.RequestRevision(r.Context(), id)
	if err != nil {
		slog.Error("Failed to request revision", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record returned for revision", res)
}

// BulkApprove implements DtrHandler.
func (d *DtrHandlerImpl) BulkApprove(w http.ResponseWriter, r *http.Request) {
	var req dtr.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bulk approve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := d.dtrService.BulkApprove(r.Context(), req)
	if err != nil {
		slog.Error("Failed to bulk approve time records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// BulkReject implements DtrHandler.
func (d *DtrHandlerImpl) BulkReject(w http.ResponseWriter, r *http.Request) {
	var req dtr.BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bulk reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	res, err := d.dtrService.BulkReject(r.Context(), req)
	if err != nil {
		slog.Error("Failed to bulk reject time records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}

// SubmitOwn implements DtrHandler.
func (d *DtrHandlerImpl) SubmitOwn(w http.ResponseWriter, r *http.Request) {
	var req dtr.SubmitDtrRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit own time record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := d.dtrService.SubmitOwn(r.Context(), req)
	if err != nil {
		slog.Error("Failed to submit own time record", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time record submitted successfully", created)
}

// ListOwn implements DtrHandler.
func (d *DtrHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	res, err := d.dtrService.ListOwn(r.Context(), dtrFilterFromQuery(r))
	if err != nil {
		slog.Error("Failed to list own time records", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}
