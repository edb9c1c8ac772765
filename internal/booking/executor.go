package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/medbot-io/medbot/internal/dialogue"
)

// Executor runs fully-specified booking actions against the store and
// renders user-facing replies. It implements dialogue.Executor.
type Executor struct {
	store *Store
}

// NewExecutor returns an Executor over store.
func NewExecutor(store *Store) *Executor {
	return &Executor{store: store}
}

// Execute dispatches action with the collected field values. Every
// booking action is handled explicitly; an unhandled action is an error
// rather than a silent no-op.
func (e *Executor) Execute(ctx context.Context, action dialogue.Action, fields map[dialogue.Field]string) (string, error) {
	switch action {
	case dialogue.ActionAddAppointment:
		return e.add(ctx, fields)
	case dialogue.ActionGetAppointmentByID:
		return e.getByID(ctx, fields)
	case dialogue.ActionUpdateAppointment:
		return e.update(ctx, fields)
	case dialogue.ActionDeleteAppointment:
		return e.delete(ctx, fields)
	case dialogue.ActionGetAllAppointments:
		return e.getAll(ctx)
	default:
		return "", fmt.Errorf("executor cannot handle action %q", action)
	}
}

func (e *Executor) add(ctx context.Context, fields map[dialogue.Field]string) (string, error) {
	a, err := e.store.Add(ctx, Appointment{
		Name:        fields[dialogue.FieldName],
		Surname:     fields[dialogue.FieldSurname],
		PersonalID:  fields[dialogue.FieldPersonalID],
		Date:        fields[dialogue.FieldDate],
		Time:        fields[dialogue.FieldTime],
		Description: fields[dialogue.FieldDescription],
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Your appointment is booked. Appointment number: %d, %s %s on %s at %s.",
		a.ID, a.Name, a.Surname, a.Date, a.Time), nil
}

func (e *Executor) getByID(ctx context.Context, fields map[dialogue.Field]string) (string, error) {
	id, err := appointmentID(fields)
	if err != nil {
		return "", err
	}
	a, err := e.store.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fmt.Sprintf("No appointment found with number %d.", id), nil
	}
	if err != nil {
		return "", err
	}
	return renderAppointment(*a), nil
}

func (e *Executor) update(ctx context.Context, fields map[dialogue.Field]string) (string, error) {
	id, err := appointmentID(fields)
	if err != nil {
		return "", err
	}
	a, err := e.store.Update(ctx, id, fields[dialogue.FieldDate], fields[dialogue.FieldTime])
	if errors.Is(err, ErrNotFound) {
		return fmt.Sprintf("No appointment found with number %d.", id), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Appointment %d is now on %s at %s.", a.ID, a.Date, a.Time), nil
}

func (e *Executor) delete(ctx context.Context, fields map[dialogue.Field]string) (string, error) {
	id, err := appointmentID(fields)
	if err != nil {
		return "", err
	}
	err = e.store.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fmt.Sprintf("No appointment found with number %d.", id), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Appointment %d is cancelled.", id), nil
}

func (e *Executor) getAll(ctx context.Context) (string, error) {
	all, err := e.store.GetAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) == 0 {
		return "There are no appointments.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "There are %d appointments:\n", len(all))
	for _, a := range all {
		b.WriteString(renderAppointment(a))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func appointmentID(fields map[dialogue.Field]string) (int64, error) {
	raw := fields[dialogue.FieldAppointmentID]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid appointment id %q: %w", raw, err)
	}
	return id, nil
}

func renderAppointment(a Appointment) string {
	s := fmt.Sprintf("Appointment %d: %s %s (patient %s) on %s at %s",
		a.ID, a.Name, a.Surname, a.PersonalID, a.Date, a.Time)
	if a.Description != "" {
		s += " - " + a.Description
	}
	return s + "."
}
