package mail

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestLogMailerAlwaysSucceeds(t *testing.T) {
	if err := (LogMailer{}).Send(context.Background(), "a@x.com", "subject", "body"); err != nil {
		t.Fatalf("LogMailer.Send() unexpected error: %v", err)
	}
}

func TestDispatchDeliversInBackground(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer)

	d.Dispatch("a@x.com", "hello", "world")
	d.Dispatch("b@x.com", "hello", "world")
	d.Flush()

	if got := mailer.count(); got != 2 {
		t.Fatalf("dispatched %d messages, want 2", got)
	}
}

func TestDispatchSwallowsTransportErrors(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer)

	// Must not panic or propagate; the failure goes to the log only.
	d.Dispatch("a@x.com", "hello", "world")
	d.Flush()

	if got := mailer.count(); got != 1 {
		t.Fatalf("transport invoked %d times, want 1", got)
	}
}

func TestSynchronousSendPropagatesErrors(t *testing.T) {
	wantErr := errors.New("smtp down")
	d := NewDispatcher(&recordingMailer{err: wantErr})

	err := d.Send(context.Background(), "a@x.com", "hello", "world")
	if !errors.Is(err, wantErr) {
		t.Fatalf("Send() error = %v, want %v", err, wantErr)
	}
}
