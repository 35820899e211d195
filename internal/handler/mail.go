package handler

import (
	"encoding/json"
	"net/http"

	"github.com/eventhub/eventhub-go/internal/mail"
)

// MailHandler exposes the dev send-email utility. Unlike the lifecycle
// notifications, this path is synchronous and surfaces transport failures.
type MailHandler struct {
	dispatcher *mail.Dispatcher
}

// NewMailHandler creates a new MailHandler.
func NewMailHandler(dispatcher *mail.Dispatcher) *MailHandler {
	return &MailHandler{dispatcher: dispatcher}
}

type sendEmailRequest struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HandleSendEmail handles POST /api/send-email requests.
func (h *MailHandler) HandleSendEmail(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("email is required"))
		return
	}

	if err := h.dispatcher.Send(r.Context(), req.Email, req.Subject, req.Message); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Email failed"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Email sent"))
}
