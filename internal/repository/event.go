package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/eventhub/eventhub-go/internal/model"
)

var ErrEventNotFound = errors.New("event not found")

const eventColumns = `id, eventname, description, hostname, eventdate, email,
	country, address, city, state, postal, audience, type, attendees, price,
	tech, agenda, twitter, website, linkedin, instagram, approval, sponsors,
	banner_url, card_url, created_by, created_at`

// EventRepository handles event persistence operations.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts a new event and sets the generated ID on the event struct.
// Sponsors are marshalled into the JSON column.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	sponsors, err := json.Marshal(event.Sponsors)
	if err != nil {
		return err
	}

	query := `INSERT INTO events (eventname, description, hostname, eventdate,
		email, country, address, city, state, postal, audience, type, attendees,
		price, tech, agenda, twitter, website, linkedin, instagram, approval,
		sponsors, banner_url, card_url, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		event.Eventname, event.Description, event.Hostname, event.Eventdate,
		event.Email, event.Country, event.Address, event.City, event.State,
		event.Postal, event.Audience, event.Type, event.Attendees, event.Price,
		event.Tech, event.Agenda, event.Twitter, event.Website, event.Linkedin,
		event.Instagram, event.Approval, sponsors, event.BannerURL, event.CardURL,
		event.CreatedBy,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// GetByID retrieves a single event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

// List retrieves all events, newest first.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC`
	return r.queryEvents(ctx, query)
}

// ListByOwner retrieves all events created by the given user, newest first.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE created_by = ? ORDER BY created_at DESC`
	return r.queryEvents(ctx, query, ownerID)
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	event := &model.Event{}
	var sponsors []byte

	err := row.Scan(
		&event.ID, &event.Eventname, &event.Description, &event.Hostname,
		&event.Eventdate, &event.Email, &event.Country, &event.Address,
		&event.City, &event.State, &event.Postal, &event.Audience, &event.Type,
		&event.Attendees, &event.Price, &event.Tech, &event.Agenda,
		&event.Twitter, &event.Website, &event.Linkedin, &event.Instagram,
		&event.Approval, &sponsors, &event.BannerURL, &event.CardURL,
		&event.CreatedBy, &event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(sponsors) > 0 {
		if err := json.Unmarshal(sponsors, &event.Sponsors); err != nil {
			return nil, err
		}
	}
	if event.Sponsors == nil {
		event.Sponsors = []string{}
	}

	return event, nil
}
