package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/peoplekit/payroll-backend-go/internal/handler/http/response"
)

// urlID reads the {id} path parameter and rejects anything that is not a
// UUID before it reaches the database layer.
func urlID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "id must be a valid UUID", nil)
		return "", false
	}
	return id, true
}
