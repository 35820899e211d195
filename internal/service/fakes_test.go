package service

import (
	"context"
	"sync"

	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
)

// In-memory stores implementing the service interfaces for tests.

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []model.User
	for i := int64(1); i <= s.nextID; i++ {
		if u, ok := s.users[i]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

type memEventStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: make(map[int64]model.Event)}
}

func (s *memEventStore) Create(_ context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	s.events[event.ID] = *event
	return nil
}

func (s *memEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; ok {
		return &e, nil
	}
	return nil, repository.ErrEventNotFound
}

func (s *memEventStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []model.Event
	for i := s.nextID; i >= 1; i-- {
		if e, ok := s.events[i]; ok {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *memEventStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []model.Event
	for i := s.nextID; i >= 1; i-- {
		if e, ok := s.events[i]; ok && e.CreatedBy == ownerID {
			events = append(events, e)
		}
	}
	return events, nil
}

// memRegStore mimics the registration table, including the optional status
// column: with statusAvailable false, status writes are dropped the same way
// the degraded SQL shape drops them.
type memRegStore struct {
	mu              sync.Mutex
	nextID          int64
	regs            map[int64]model.Registration
	users           *memUserStore
	statusAvailable bool
}

func newMemRegStore(users *memUserStore, statusAvailable bool) *memRegStore {
	return &memRegStore{regs: make(map[int64]model.Registration), users: users, statusAvailable: statusAvailable}
}

func (s *memRegStore) Create(_ context.Context, reg *model.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.regs {
		if r.EventID == reg.EventID && r.UserID == reg.UserID {
			return repository.ErrDuplicateRegistration
		}
	}
	if !s.statusAvailable {
		reg.Status = ""
	}
	s.nextID++
	reg.ID = s.nextID
	s.regs[reg.ID] = *reg
	return nil
}

func (s *memRegStore) GetByID(_ context.Context, id int64) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.regs[id]; ok {
		return &r, nil
	}
	return nil, repository.ErrRegistrationNotFound
}

func (s *memRegStore) ExistsForEventAndUser(_ context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.regs {
		if r.EventID == eventID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memRegStore) ListByEvent(ctx context.Context, eventID int64) ([]model.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.EventRegistration
	for i := int64(1); i <= s.nextID; i++ {
		r, ok := s.regs[i]
		if !ok || r.EventID != eventID {
			continue
		}
		entry := model.EventRegistration{ID: r.ID, UserID: r.UserID}
		if s.statusAvailable {
			entry.Status = r.Status
		}
		if u, err := s.users.GetByID(ctx, r.UserID); err == nil {
			entry.User = model.AttendeeProfile{Firstname: u.Firstname, Lastname: u.Lastname, Email: u.Email}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *memRegStore) UpdateStatus(_ context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.statusAvailable {
		return nil
	}
	if r, ok := s.regs[id]; ok {
		r.Status = status
		s.regs[id] = r
	}
	return nil
}

func (s *memRegStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.regs, id)
	return nil
}

func (s *memRegStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs)
}
