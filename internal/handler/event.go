package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/eventhub/eventhub-go/internal/middleware"
	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/service"
)

// maxUploadBytes caps the in-memory multipart form for event creation.
// Uploads are buffered fully before being forwarded to storage.
const maxUploadBytes = 32 << 20 // 32MB

// EventHandler handles event creation, reads and registration routes.
type EventHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events *service.EventService, registrations *service.RegistrationService) *EventHandler {
	return &EventHandler{events: events, registrations: registrations}
}

// HandleCreate handles POST /api/events multipart requests.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid multipart form"))
		return
	}

	req, err := parseEventForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	event, err := h.events.Create(r.Context(), ownerID, req)
	if err != nil {
		if errors.Is(err, service.ErrEventNameRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.EventResponse{Success: true, Event: event})
}

func parseEventForm(r *http.Request) (model.CreateEventRequest, error) {
	req := model.CreateEventRequest{
		Eventname:   r.FormValue("eventname"),
		Description: r.FormValue("description"),
		Hostname:    r.FormValue("hostname"),
		Eventdate:   r.FormValue("eventdate"),
		Email:       r.FormValue("email"),
		Country:     r.FormValue("country"),
		Address:     r.FormValue("address"),
		City:        r.FormValue("city"),
		State:       r.FormValue("state"),
		Postal:      r.FormValue("postal"),
		Audience:    r.FormValue("audience"),
		Type:        r.FormValue("type"),
		Tech:        r.FormValue("tech"),
		Agenda:      r.FormValue("agenda"),
		Twitter:     r.FormValue("twitter"),
		Website:     r.FormValue("website"),
		Linkedin:    r.FormValue("linkedin"),
		Instagram:   r.FormValue("instagram"),
		Approval:    r.FormValue("approval") == "true",
	}

	if v := r.FormValue("attendees"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, errors.New("attendees must be a number")
		}
		req.Attendees = &n
	}
	if v := r.FormValue("price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, errors.New("price must be a number")
		}
		req.Price = &p
	}

	req.Sponsors = []string{}
	if v := r.FormValue("sponsors"); v != "" {
		if err := json.Unmarshal([]byte(v), &req.Sponsors); err != nil {
			return req, errors.New("sponsors must be a JSON array")
		}
	}

	var err error
	if req.Banner, err = formFile(r, "banner"); err != nil {
		return req, err
	}
	if req.Card, err = formFile(r, "card"); err != nil {
		return req, err
	}

	return req, nil
}

// formFile reads an optional multipart file fully into memory.
func formFile(r *http.Request, field string) (*model.FileUpload, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.New("invalid " + field + " upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("reading " + field + " upload failed")
	}

	return &model.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// HandleList handles GET /api/events requests.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, model.EventListResponse{Success: true, Events: events})
}

// HandleListMine handles GET /api/events/my requests.
func (h *EventHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	events, err := h.events.ListMine(r.Context(), ownerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, model.EventListResponse{Success: true, Events: events})
}

// HandleGet handles GET /api/events/{id} requests.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	event, err := h.events.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.EventResponse{Success: true, Event: event})
}

// HandleRegister handles POST /api/events/{id}/register requests.
func (h *EventHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	reg, err := h.registrations.Register(r.Context(), id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserIDRequired), errors.Is(err, service.ErrAlreadyRegistered):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("Registration failed"))
		}
		return
	}

	writeJSON(w, http.StatusOK, model.RegistrationResponse{Success: true, Registration: reg})
}

// HandleListRegistrations handles GET /api/events/{id}/registrations requests.
func (h *EventHandler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid event id"))
		return
	}

	regs, event, err := h.registrations.ListForEvent(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.EventRegistrationsResponse{
		Success:       true,
		Registrations: regs,
		Event:         event,
	})
}
