package service

import (
	"context"
	"errors"

	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
	"github.com/eventhub/eventhub-go/internal/storage"
)

var (
	ErrEventNameRequired = errors.New("eventname is required")
	ErrEventNotFound     = errors.New("Event not found")
)

// EventStore is the persistence surface EventService needs.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Event, error)
}

// EventService handles event creation and reads.
type EventService struct {
	events EventStore
	store  storage.Store
}

// NewEventService creates a new EventService.
func NewEventService(events EventStore, store storage.Store) *EventService {
	return &EventService{events: events, store: store}
}

// Create uploads any banner/card assets and inserts the event. The owner
// comes from the authenticated caller.
func (s *EventService) Create(ctx context.Context, ownerID int64, req model.CreateEventRequest) (*model.Event, error) {
	if req.Eventname == "" {
		return nil, ErrEventNameRequired
	}

	bannerURL, err := s.uploadAsset(ctx, "banner", req.Banner)
	if err != nil {
		return nil, err
	}
	cardURL, err := s.uploadAsset(ctx, "card", req.Card)
	if err != nil {
		return nil, err
	}

	sponsors := req.Sponsors
	if sponsors == nil {
		sponsors = []string{}
	}

	event := &model.Event{
		Eventname:   req.Eventname,
		Description: req.Description,
		Hostname:    req.Hostname,
		Eventdate:   req.Eventdate,
		Email:       req.Email,
		Country:     req.Country,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Postal:      req.Postal,
		Audience:    req.Audience,
		Type:        req.Type,
		Attendees:   req.Attendees,
		Price:       req.Price,
		Tech:        req.Tech,
		Agenda:      req.Agenda,
		Twitter:     req.Twitter,
		Website:     req.Website,
		Linkedin:    req.Linkedin,
		Instagram:   req.Instagram,
		Approval:    req.Approval,
		Sponsors:    sponsors,
		BannerURL:   bannerURL,
		CardURL:     cardURL,
		CreatedBy:   ownerID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *EventService) uploadAsset(ctx context.Context, kind string, file *model.FileUpload) (*string, error) {
	if file == nil {
		return nil, nil
	}

	key := storage.ObjectKey(kind, file.Filename)
	url, err := s.store.Upload(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// Get retrieves a single event.
func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// ListMine returns the events owned by the given user, newest first.
func (s *EventService) ListMine(ctx context.Context, ownerID int64) ([]model.Event, error) {
	return s.events.ListByOwner(ctx, ownerID)
}
