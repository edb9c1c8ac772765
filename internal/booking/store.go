package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/medbot-io/medbot/internal/db"
)

// Store provides CRUD operations for appointments.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Add inserts a new appointment and returns it with its assigned id.
func (s *Store) Add(ctx context.Context, a Appointment) (*Appointment, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (name, surname, personal_id, date, time, description)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.Name, a.Surname, a.PersonalID, a.Date, a.Time, a.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting appointment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading appointment id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID retrieves a single appointment, ErrNotFound if it does not exist.
func (s *Store) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, surname, personal_id, date, time, description, created_at, updated_at
		FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

// GetAll returns every appointment ordered by id.
func (s *Store) GetAll(ctx context.Context) ([]Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, surname, personal_id, date, time, description, created_at, updated_at
		FROM appointments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// GetByPersonalID returns all appointments for one patient ordered by id.
func (s *Store) GetByPersonalID(ctx context.Context, personalID string) ([]Appointment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, surname, personal_id, date, time, description, created_at, updated_at
		FROM appointments WHERE personal_id = ? ORDER BY id`, personalID)
	if err != nil {
		return nil, fmt.Errorf("querying appointments by personal id: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Update changes the date and/or time of an appointment. At least one of
// date or time must be non-empty.
func (s *Store) Update(ctx context.Context, id int64, date, clock string) (*Appointment, error) {
	if date == "" && clock == "" {
		return nil, errors.New("either date or time must be provided")
	}

	var (
		query string
		args  []any
	)
	switch {
	case date != "" && clock != "":
		query = `UPDATE appointments SET date = ?, time = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		args = []any{date, clock, id}
	case date != "":
		query = `UPDATE appointments SET date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		args = []any{date, id}
	default:
		query = `UPDATE appointments SET time = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
		args = []any{clock, id}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes an appointment, ErrNotFound if it does not exist.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row scanner) (*Appointment, error) {
	var (
		a                Appointment
		created, updated string
	)
	err := row.Scan(&a.ID, &a.Name, &a.Surname, &a.PersonalID,
		&a.Date, &a.Time, &a.Description, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning appointment: %w", err)
	}
	a.CreatedAt = parseTimestamp(created)
	a.UpdatedAt = parseTimestamp(updated)
	return &a, nil
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
