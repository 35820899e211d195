package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/eventhub/eventhub-go/internal/model"
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("user already registered for event")
)

// RegistrationRepository handles registration persistence. Every query that
// touches the optional status column consults the injected probe first and
// falls back to the degraded shape when the column is absent.
type RegistrationRepository struct {
	db    *sql.DB
	probe *StatusColumnProbe
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(db *sql.DB, probe *StatusColumnProbe) *RegistrationRepository {
	return &RegistrationRepository{db: db, probe: probe}
}

// StatusAvailable reports whether the status column exists in the store.
func (r *RegistrationRepository) StatusAvailable(ctx context.Context) bool {
	return r.probe.Available(ctx)
}

func registrationInsertQuery(withStatus bool) string {
	if withStatus {
		return `INSERT INTO registrations (event_id, user_id, status) VALUES (?, ?, ?)`
	}
	return `INSERT INTO registrations (event_id, user_id) VALUES (?, ?)`
}

func registrationSelectQuery(withStatus bool) string {
	if withStatus {
		return `SELECT id, event_id, user_id, status, created_at FROM registrations WHERE id = ?`
	}
	return `SELECT id, event_id, user_id, created_at FROM registrations WHERE id = ?`
}

// Create inserts a new registration and sets the generated ID. The status
// field is written only when the column is available. If the extended insert
// still hits an unknown-column error (cached probe racing a migration), one
// degraded retry is made before surfacing the error.
func (r *RegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	var result sql.Result
	var err error

	if r.probe.Available(ctx) {
		result, err = r.db.ExecContext(ctx, registrationInsertQuery(true), reg.EventID, reg.UserID, reg.Status)
		if err != nil && isUnknownColumnErr(err) {
			slog.Warn("status column vanished mid-process, retrying degraded insert")
			result, err = r.db.ExecContext(ctx, registrationInsertQuery(false), reg.EventID, reg.UserID)
		}
	} else {
		reg.Status = ""
		result, err = r.db.ExecContext(ctx, registrationInsertQuery(false), reg.EventID, reg.UserID)
	}
	if err != nil {
		if isDuplicateEntryErr(err) {
			return ErrDuplicateRegistration
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	reg.ID = id
	return nil
}

// GetByID retrieves a registration by its ID.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*model.Registration, error) {
	withStatus := r.probe.Available(ctx)

	reg := &model.Registration{}
	var err error
	if withStatus {
		err = r.db.QueryRowContext(ctx, registrationSelectQuery(true), id).Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.CreatedAt,
		)
	} else {
		err = r.db.QueryRowContext(ctx, registrationSelectQuery(false), id).Scan(
			&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt,
		)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	return reg, nil
}

// ExistsForEventAndUser reports whether a registration exists for the pair.
func (r *RegistrationRepository) ExistsForEventAndUser(ctx context.Context, eventID, userID int64) (bool, error) {
	query := `SELECT 1 FROM registrations WHERE event_id = ? AND user_id = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func attendeeListQuery(withStatus bool) string {
	if withStatus {
		return `SELECT r.id, r.user_id, r.status, u.firstname, u.lastname, u.email
			FROM registrations r
			JOIN users u ON u.id = r.user_id
			WHERE r.event_id = ?
			ORDER BY r.id ASC`
	}
	return `SELECT r.id, r.user_id, u.firstname, u.lastname, u.email
		FROM registrations r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = ?
		ORDER BY r.id ASC`
}

// ListByEvent retrieves all registrations for an event joined with the
// attendee profile. Status is included only when the column is available;
// an unexpected unknown-column error triggers one degraded retry.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.EventRegistration, error) {
	withStatus := r.probe.Available(ctx)

	regs, err := r.queryAttendees(ctx, withStatus, eventID)
	if err != nil && withStatus && isUnknownColumnErr(err) {
		slog.Warn("status column vanished mid-process, retrying degraded attendee list")
		regs, err = r.queryAttendees(ctx, false, eventID)
	}
	return regs, err
}

func (r *RegistrationRepository) queryAttendees(ctx context.Context, withStatus bool, eventID int64) ([]model.EventRegistration, error) {
	rows, err := r.db.QueryContext(ctx, attendeeListQuery(withStatus), eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.EventRegistration
	for rows.Next() {
		var reg model.EventRegistration
		if withStatus {
			err = rows.Scan(&reg.ID, &reg.UserID, &reg.Status, &reg.User.Firstname, &reg.User.Lastname, &reg.User.Email)
		} else {
			err = rows.Scan(&reg.ID, &reg.UserID, &reg.User.Firstname, &reg.User.Lastname, &reg.User.Email)
		}
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// UpdateStatus sets the status of a registration. When the column is not
// available the call is a no-op; callers treat the row as pending forever.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !r.probe.Available(ctx) {
		slog.Info("status column not available, skipping status update", "registration_id", id)
		return nil
	}

	_, err := r.db.ExecContext(ctx, `UPDATE registrations SET status = ? WHERE id = ?`, status, id)
	if err != nil && isUnknownColumnErr(err) {
		slog.Warn("status column vanished mid-process, skipping status update", "registration_id", id)
		return nil
	}
	return err
}

// Delete removes a registration row. Deleting a missing row is not an error.
func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = ?`, id)
	return err
}
