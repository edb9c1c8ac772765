package dialogue

// Action is the classified goal of a user message. The set is closed:
// extraction output that does not parse into one of these values is
// treated as ActionInvalid.
type Action string

const (
	ActionAddAppointment     Action = "add_appointment"
	ActionGetAppointmentByID Action = "get_appointment_by_id"
	ActionUpdateAppointment  Action = "update_appointment"
	ActionDeleteAppointment  Action = "delete_appointment"
	ActionGetAllAppointments Action = "get_all_appointments"
	ActionMedicalQuestion    Action = "medical_question"
	ActionInvalid            Action = "invalid"
	ActionNone               Action = "none"
)

// actions is the canonical set, used by ParseAction.
var actions = map[Action]bool{
	ActionAddAppointment:     true,
	ActionGetAppointmentByID: true,
	ActionUpdateAppointment:  true,
	ActionDeleteAppointment:  true,
	ActionGetAllAppointments: true,
	ActionMedicalQuestion:    true,
	ActionInvalid:            true,
	ActionNone:               true,
}

// ParseAction converts a raw string from the extraction collaborator into
// an Action. Unrecognized values map to ActionInvalid.
func ParseAction(s string) Action {
	a := Action(s)
	if !actions[a] {
		return ActionInvalid
	}
	return a
}

// IsBooking reports whether the action operates on the appointment store.
func (a Action) IsBooking() bool {
	switch a {
	case ActionAddAppointment, ActionGetAppointmentByID, ActionUpdateAppointment,
		ActionDeleteAppointment, ActionGetAllAppointments:
		return true
	case ActionMedicalQuestion, ActionInvalid, ActionNone:
		return false
	}
	return false
}
