package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub/eventhub-go/internal/mail"
	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
)

var (
	ErrUserIDRequired       = errors.New("User ID is required")
	ErrUserNotFound         = errors.New("User not found")
	ErrAlreadyRegistered    = errors.New("You are already registered for this event")
	ErrRegistrationNotFound = errors.New("Registration not found")
)

// RegistrationStore is the persistence surface RegistrationService needs.
type RegistrationStore interface {
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id int64) (*model.Registration, error)
	ExistsForEventAndUser(ctx context.Context, eventID, userID int64) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.EventRegistration, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// RegistrationService drives the registration lifecycle:
// absent -> pending -> accepted, or deleted (terminal). Rejection deletes
// the row, there is no durable rejected state.
type RegistrationService struct {
	regs   RegistrationStore
	events EventStore
	users  UserStore
	mail   *mail.Dispatcher
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(regs RegistrationStore, events EventStore, users UserStore, dispatcher *mail.Dispatcher) *RegistrationService {
	return &RegistrationService{
		regs:   regs,
		events: events,
		users:  users,
		mail:   dispatcher,
	}
}

// Register creates a pending registration for the (event, user) pair. The
// existence pre-check produces the friendly already-registered error; the
// store's unique key on the pair closes the window where two concurrent
// registrations both pass the check.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID int64) (*model.Registration, error) {
	if userID == 0 {
		return nil, ErrUserIDRequired
	}

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.regs.ExistsForEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	reg := &model.Registration{
		EventID: eventID,
		UserID:  userID,
		Status:  model.StatusPending,
	}
	if err := s.regs.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	return reg, nil
}

// ListForEvent returns the attendee list for an event together with the
// event record. The event lookup is best-effort; listings still answer when
// the event record cannot be loaded.
func (s *RegistrationService) ListForEvent(ctx context.Context, eventID int64) ([]model.EventRegistration, *model.Event, error) {
	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if regs == nil {
		regs = []model.EventRegistration{}
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		event = nil
	}

	return regs, event, nil
}

// Accept transitions a registration to accepted. The acceptance email is
// dispatched before the durable mutation and never blocks it; when the
// status column is absent the mutation is a no-op beyond the notification.
func (s *RegistrationService) Accept(ctx context.Context, id int64) error {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}

	user, eventName := s.notificationContext(ctx, reg)
	if user != nil && user.Email != "" {
		s.mail.Dispatch(
			user.Email,
			fmt.Sprintf("Accepted for %s", eventName),
			fmt.Sprintf("Hello %s,\n\nYou have been accepted for %s.\n\nSee you there!", user.Firstname, eventName),
		)
	}

	return s.regs.UpdateStatus(ctx, id, model.StatusAccepted)
}

// Reject dispatches a rejection email and deletes the registration row.
// Destructive and non-reversible; the rejection exists only as the email.
func (s *RegistrationService) Reject(ctx context.Context, id int64) error {
	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return err
	}

	user, eventName := s.notificationContext(ctx, reg)
	if user != nil && user.Email != "" {
		s.mail.Dispatch(
			user.Email,
			fmt.Sprintf("Update on %s", eventName),
			fmt.Sprintf("Hello %s,\n\nUnfortunately your registration for %s was not accepted.\n\nThank you for your interest.", user.Firstname, eventName),
		)
	}

	return s.regs.Delete(ctx, id)
}

// Delete removes a registration without ceremony, for the owning host.
func (s *RegistrationService) Delete(ctx context.Context, id int64) error {
	return s.regs.Delete(ctx, id)
}

// notificationContext loads the attendee and event name for an email.
// Both lookups are best-effort: missing data degrades the message, it never
// blocks the lifecycle transition.
func (s *RegistrationService) notificationContext(ctx context.Context, reg *model.Registration) (*model.User, string) {
	user, err := s.users.GetByID(ctx, reg.UserID)
	if err != nil {
		user = nil
	}

	eventName := "the event"
	if event, err := s.events.GetByID(ctx, reg.EventID); err == nil && event.Eventname != "" {
		eventName = event.Eventname
	}

	return user, eventName
}
