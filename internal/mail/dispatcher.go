package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const dispatchTimeout = 15 * time.Second

// Dispatcher fans out lifecycle notifications without joining delivery into
// the caller's result. Each Dispatch runs in its own goroutine; a failed
// delivery ends up in the log and nowhere else.
type Dispatcher struct {
	mailer Mailer
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the given transport.
func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

// Dispatch sends a message in the background. Delivery is detached from the
// request that triggered it, so the message gets its own deadline instead of
// the request context.
func (d *Dispatcher) Dispatch(to, subject, body string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.mailer.Send(ctx, to, subject, body); err != nil {
			slog.Error("notification delivery failed", "to", to, "subject", subject, "error", err)
		}
	}()
}

// Send delivers synchronously and surfaces transport errors. Used by the
// dev send-email endpoint, which does care about delivery failures.
func (d *Dispatcher) Send(ctx context.Context, to, subject, body string) error {
	return d.mailer.Send(ctx, to, subject, body)
}

// Flush waits for all in-flight dispatches, used during shutdown.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}
