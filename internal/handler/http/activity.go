package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/response"
)

type ActivityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type ActivityHandlerImpl struct {
	activityService activity.Service
}

func NewActivityHandler(activityService activity.Service) ActivityHandler {
	return &ActivityHandlerImpl{activityService: activityService}
}

// List implements ActivityHandler.
func (a *ActivityHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter activity.Filter

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if action := r.URL.Query().Get("action"); action != "" {
		filter.Action = &action
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

	res, err := a.activityService.List(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list activities", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, res)
}
