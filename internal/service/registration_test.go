package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/eventhub/eventhub-go/internal/mail"
	"github.com/eventhub/eventhub-go/internal/model"
)

type sentMail struct {
	to, subject, body string
}

type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.err
}

func (m *captureMailer) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type regFixture struct {
	svc        *RegistrationService
	regs       *memRegStore
	mailer     *captureMailer
	dispatcher *mail.Dispatcher
	eventID    int64
	userID     int64
}

func newRegFixture(t *testing.T, statusAvailable bool) *regFixture {
	t.Helper()

	users := newMemUserStore()
	events := newMemEventStore()
	regs := newMemRegStore(users, statusAvailable)
	mailer := &captureMailer{}
	dispatcher := mail.NewDispatcher(mailer)

	user := &model.User{Firstname: "Ada", Lastname: "Lovelace", Email: "ada@x.com", PasswordHash: "h"}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	event := &model.Event{Eventname: "GopherCon", CreatedBy: user.ID}
	if err := events.Create(context.Background(), event); err != nil {
		t.Fatalf("seeding event: %v", err)
	}

	return &regFixture{
		svc:        NewRegistrationService(regs, events, users, dispatcher),
		regs:       regs,
		mailer:     mailer,
		dispatcher: dispatcher,
		eventID:    event.ID,
		userID:     user.ID,
	}
}

func TestRegisterCreatesPendingRow(t *testing.T) {
	f := newRegFixture(t, true)

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if reg.Status != model.StatusPending {
		t.Errorf("new registration status = %q, want %q", reg.Status, model.StatusPending)
	}
	if f.regs.count() != 1 {
		t.Errorf("store holds %d rows, want 1", f.regs.count())
	}
}

func TestRegisterTwiceIsRejectedWithOneRow(t *testing.T) {
	f := newRegFixture(t, true)

	if _, err := f.svc.Register(context.Background(), f.eventID, f.userID); err != nil {
		t.Fatalf("first Register() unexpected error: %v", err)
	}

	_, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("second Register() error = %v, want ErrAlreadyRegistered", err)
	}
	if f.regs.count() != 1 {
		t.Errorf("store holds %d rows for the pair, want exactly 1", f.regs.count())
	}
}

func TestRegisterUnknownEventCreatesNothing(t *testing.T) {
	f := newRegFixture(t, true)

	_, err := f.svc.Register(context.Background(), 999, f.userID)
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("Register() error = %v, want ErrEventNotFound", err)
	}
	if f.regs.count() != 0 {
		t.Errorf("store holds %d rows, want 0", f.regs.count())
	}
}

func TestRegisterUnknownUser(t *testing.T) {
	f := newRegFixture(t, true)

	if _, err := f.svc.Register(context.Background(), f.eventID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Register() error = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterMissingUserID(t *testing.T) {
	f := newRegFixture(t, true)

	if _, err := f.svc.Register(context.Background(), f.eventID, 0); !errors.Is(err, ErrUserIDRequired) {
		t.Fatalf("Register() error = %v, want ErrUserIDRequired", err)
	}
}

func TestAcceptSetsStatusAndNotifies(t *testing.T) {
	f := newRegFixture(t, true)

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := f.svc.Accept(context.Background(), reg.ID); err != nil {
		t.Fatalf("Accept() unexpected error: %v", err)
	}
	f.dispatcher.Flush()

	got, err := f.regs.GetByID(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("registration vanished after accept: %v", err)
	}
	if got.Status != model.StatusAccepted {
		t.Errorf("status after accept = %q, want %q", got.Status, model.StatusAccepted)
	}

	msgs := f.mailer.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d mails, want 1", len(msgs))
	}
	if msgs[0].to != "ada@x.com" {
		t.Errorf("mail recipient = %q", msgs[0].to)
	}
	if !strings.Contains(msgs[0].subject, "GopherCon") {
		t.Errorf("mail subject = %q, want event name included", msgs[0].subject)
	}
	if !strings.Contains(msgs[0].body, "accepted") {
		t.Errorf("mail body = %q, want acceptance wording", msgs[0].body)
	}
}

func TestAcceptWithoutStatusColumnStillSucceeds(t *testing.T) {
	f := newRegFixture(t, false)

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := f.svc.Accept(context.Background(), reg.ID); err != nil {
		t.Fatalf("Accept() unexpected error: %v", err)
	}
	f.dispatcher.Flush()

	got, err := f.regs.GetByID(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("registration vanished after accept: %v", err)
	}
	if got.Status != "" {
		t.Errorf("status = %q, want empty (implicitly pending) without the column", got.Status)
	}
	if f.regs.count() != 1 {
		t.Errorf("row count changed: %d", f.regs.count())
	}
	if len(f.mailer.messages()) != 1 {
		t.Error("acceptance email should still be sent without the status column")
	}
}

func TestAcceptMailFailureDoesNotBlockTransition(t *testing.T) {
	f := newRegFixture(t, true)
	f.mailer.err = errors.New("smtp down")

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := f.svc.Accept(context.Background(), reg.ID); err != nil {
		t.Fatalf("Accept() should ignore mail failure, got %v", err)
	}
	f.dispatcher.Flush()

	got, _ := f.regs.GetByID(context.Background(), reg.ID)
	if got.Status != model.StatusAccepted {
		t.Errorf("status after accept = %q, want %q despite mail failure", got.Status, model.StatusAccepted)
	}
}

func TestAcceptUnknownRegistration(t *testing.T) {
	f := newRegFixture(t, true)

	if err := f.svc.Accept(context.Background(), 42); !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("Accept() error = %v, want ErrRegistrationNotFound", err)
	}
}

func TestRejectDeletesRowAndNotifies(t *testing.T) {
	f := newRegFixture(t, true)

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := f.svc.Reject(context.Background(), reg.ID); err != nil {
		t.Fatalf("Reject() unexpected error: %v", err)
	}
	f.dispatcher.Flush()

	if f.regs.count() != 0 {
		t.Errorf("store holds %d rows after reject, want 0", f.regs.count())
	}

	regs, _, err := f.svc.ListForEvent(context.Background(), f.eventID)
	if err != nil {
		t.Fatalf("ListForEvent() unexpected error: %v", err)
	}
	if len(regs) != 0 {
		t.Errorf("event listing still contains %d registrations after reject", len(regs))
	}

	msgs := f.mailer.messages()
	if len(msgs) != 1 {
		t.Fatalf("sent %d mails, want 1", len(msgs))
	}
	if !strings.Contains(msgs[0].body, "not accepted") {
		t.Errorf("mail body = %q, want rejection wording", msgs[0].body)
	}
}

func TestRejectUnknownRegistration(t *testing.T) {
	f := newRegFixture(t, true)

	if err := f.svc.Reject(context.Background(), 42); !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("Reject() error = %v, want ErrRegistrationNotFound", err)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	f := newRegFixture(t, true)

	reg, err := f.svc.Register(context.Background(), f.eventID, f.userID)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := f.svc.Delete(context.Background(), reg.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if f.regs.count() != 0 {
		t.Errorf("store holds %d rows after delete, want 0", f.regs.count())
	}

	// No existence pre-check: deleting again is still not an error.
	if err := f.svc.Delete(context.Background(), reg.ID); err != nil {
		t.Fatalf("repeat Delete() unexpected error: %v", err)
	}
}

func TestListForEventIncludesAttendeeProfile(t *testing.T) {
	f := newRegFixture(t, true)

	if _, err := f.svc.Register(context.Background(), f.eventID, f.userID); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	regs, event, err := f.svc.ListForEvent(context.Background(), f.eventID)
	if err != nil {
		t.Fatalf("ListForEvent() unexpected error: %v", err)
	}
	if event == nil || event.Eventname != "GopherCon" {
		t.Errorf("event record missing from listing: %+v", event)
	}
	if len(regs) != 1 {
		t.Fatalf("listed %d registrations, want 1", len(regs))
	}
	if regs[0].User.Email != "ada@x.com" || regs[0].User.Firstname != "Ada" {
		t.Errorf("attendee profile = %+v", regs[0].User)
	}
	if regs[0].Status != model.StatusPending {
		t.Errorf("listed status = %q, want %q", regs[0].Status, model.StatusPending)
	}
}
