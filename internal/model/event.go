package model

import "time"

// Event represents an event row in the database. Sponsors are stored as a
// JSON array in a single column.
type Event struct {
	ID          int64     `json:"id"`
	Eventname   string    `json:"eventname"`
	Description string    `json:"description"`
	Hostname    string    `json:"hostname"`
	Eventdate   string    `json:"eventdate"`
	Email       string    `json:"email"`
	Country     string    `json:"country"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Postal      string    `json:"postal"`
	Audience    string    `json:"audience"`
	Type        string    `json:"type"`
	Attendees   *int64    `json:"attendees"`
	Price       *float64  `json:"price"`
	Tech        string    `json:"tech"`
	Agenda      string    `json:"agenda"`
	Twitter     string    `json:"twitter"`
	Website     string    `json:"website"`
	Linkedin    string    `json:"linkedin"`
	Instagram   string    `json:"instagram"`
	Approval    bool      `json:"approval"`
	Sponsors    []string  `json:"sponsors"`
	BannerURL   *string   `json:"banner_url"`
	CardURL     *string   `json:"card_url"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// FileUpload is an uploaded file buffered in memory by the handler.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateEventRequest carries the parsed multipart form for event creation.
// The owner comes from the verified token, never from the form.
type CreateEventRequest struct {
	Eventname   string
	Description string
	Hostname    string
	Eventdate   string
	Email       string
	Country     string
	Address     string
	City        string
	State       string
	Postal      string
	Audience    string
	Type        string
	Attendees   *int64
	Price       *float64
	Tech        string
	Agenda      string
	Twitter     string
	Website     string
	Linkedin    string
	Instagram   string
	Approval    bool
	Sponsors    []string
	Banner      *FileUpload
	Card        *FileUpload
}

// EventResponse wraps a single event.
type EventResponse struct {
	Success bool   `json:"success"`
	Event   *Event `json:"event"`
}

// EventListResponse wraps a list of events.
type EventListResponse struct {
	Success bool    `json:"success"`
	Events  []Event `json:"events"`
}
