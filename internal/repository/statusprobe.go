package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-sql-driver/mysql"
)

// StatusColumnProbe reports whether the registrations table carries the
// optional status column. The answer is probed lazily on first use and
// cached for the lifetime of the process; a live migration mid-process is
// not picked up, which trades staleness for not re-issuing failed probes on
// every request.
//
// The probe is owned by main and injected into the registration repository,
// there is no package-level state.
type StatusColumnProbe struct {
	once      sync.Once
	available bool
	query     func(ctx context.Context) error
}

// NewStatusColumnProbe creates a probe over the given connection pool.
func NewStatusColumnProbe(db *sql.DB) *StatusColumnProbe {
	return &StatusColumnProbe{
		query: func(ctx context.Context) error {
			rows, err := db.QueryContext(ctx, `SELECT status FROM registrations LIMIT 1`)
			if err != nil {
				return err
			}
			return rows.Close()
		},
	}
}

// newStatusColumnProbeWithQuery allows tests to substitute the probe query.
func newStatusColumnProbeWithQuery(query func(ctx context.Context) error) *StatusColumnProbe {
	return &StatusColumnProbe{query: query}
}

// Available reports whether the status column exists. The first call issues
// a minimal read; success (even with zero rows) marks the column present, an
// unknown-column error marks it absent, and any other failure is treated
// conservatively as absent and logged.
func (p *StatusColumnProbe) Available(ctx context.Context) bool {
	p.once.Do(func() {
		err := p.query(ctx)
		switch {
		case err == nil:
			p.available = true
		case isUnknownColumnErr(err):
			slog.Info("registrations.status column not present, running degraded")
		default:
			slog.Warn("status column probe failed, assuming column absent", "error", err)
		}
	})
	return p.available
}

// isUnknownColumnErr checks for the MySQL unknown column error (code 1054).
func isUnknownColumnErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1054
}
