// Package booking stores and manages patient appointments.
package booking

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no appointment matches the given id.
var ErrNotFound = errors.New("appointment not found")

// Appointment is one booked appointment.
type Appointment struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	PersonalID  string    `json:"personal_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
