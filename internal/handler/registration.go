package handler

import (
	"errors"
	"net/http"

	"github.com/eventhub/eventhub-go/internal/service"
)

// RegistrationHandler handles host-side registration lifecycle routes.
type RegistrationHandler struct {
	service *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

// HandleAccept handles PUT /api/registrations/{id}/accept requests.
func (h *RegistrationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid registration id"))
		return
	}

	if err := h.service.Accept(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Registration accepted"))
}

// HandleReject handles PUT /api/registrations/{id}/reject requests. The
// registration row is deleted, not marked.
func (h *RegistrationHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid registration id"))
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Registration rejected and deleted"))
}

// HandleDelete handles DELETE /api/registrations/{id} requests.
func (h *RegistrationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid registration id"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
