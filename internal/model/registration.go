package model

import "time"

// Registration statuses. A rejected registration is deleted outright, so no
// rejected status exists.
const (
	StatusPending  = "pending"
	StatusAccepted = "accept"
)

// Registration represents a registration row. Status is empty when the
// underlying table has no status column; such rows are implicitly pending.
type Registration struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"confirm,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendeeProfile is the slice of the user profile joined into event
// registration listings.
type AttendeeProfile struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// EventRegistration is a registration joined with its attendee profile.
type EventRegistration struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Status string          `json:"confirm,omitempty"`
	User   AttendeeProfile `json:"users"`
}

// RegisterRequest is the body for registering a user for an event.
type RegisterRequest struct {
	UserID int64 `json:"userId"`
}

// RegistrationResponse wraps a newly created registration.
type RegistrationResponse struct {
	Success      bool          `json:"success"`
	Registration *Registration `json:"registration"`
}

// EventRegistrationsResponse wraps the attendee list for an event together
// with the event record.
type EventRegistrationsResponse struct {
	Success       bool                `json:"success"`
	Registrations []EventRegistration `json:"registrations"`
	Event         *Event              `json:"event"`
}
