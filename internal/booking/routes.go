package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
)

var personalIDPattern = regexp.MustCompile(`^\d{6}$`)

// RegisterRoutes mounts appointment endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/appointments", listAppointmentsHandler(store))
	r.Post("/api/appointments", createAppointmentHandler(store))
	r.Get("/api/appointments/{id}", getAppointmentHandler(store))
	r.Put("/api/appointments/{id}", updateAppointmentHandler(store))
	r.Delete("/api/appointments/{id}", deleteAppointmentHandler(store))
	r.Get("/api/patients/{personalID}", patientAppointmentsHandler(store))
}

func listAppointmentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.GetAll(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if all == nil {
			all = []Appointment{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func createAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a Appointment
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if a.Name == "" || a.Surname == "" || a.Date == "" || a.Time == "" {
			http.Error(w, "name, surname, date and time are required", http.StatusBadRequest)
			return
		}
		if !personalIDPattern.MatchString(a.PersonalID) {
			http.Error(w, "personal_id must be exactly 6 digits", http.StatusBadRequest)
			return
		}
		created, err := store.Add(r.Context(), a)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentIDParam(w, r)
		if !ok {
			return
		}
		a, err := store.GetByID(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func updateAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentIDParam(w, r)
		if !ok {
			return
		}
		var body struct {
			Date string `json:"date"`
			Time string `json:"time"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if body.Date == "" && body.Time == "" {
			http.Error(w, "either date or time is required", http.StatusBadRequest)
			return
		}
		a, err := store.Update(r.Context(), id, body.Date, body.Time)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func deleteAppointmentHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appointmentIDParam(w, r)
		if !ok {
			return
		}
		err := store.Delete(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func patientAppointmentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		personalID := chi.URLParam(r, "personalID")
		if !personalIDPattern.MatchString(personalID) {
			http.Error(w, "personal_id must be exactly 6 digits", http.StatusBadRequest)
			return
		}
		all, err := store.GetByPersonalID(r.Context(), personalID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if all == nil {
			all = []Appointment{}
		}
		writeJSON(w, http.StatusOK, all)
	}
}

func appointmentIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid appointment id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
