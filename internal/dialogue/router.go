package dialogue

// Outcome classifies what a new intent leads to.
type Outcome int

const (
	// OutcomeFillSlots starts or continues field collection for a booking
	// action.
	OutcomeFillSlots Outcome = iota
	// OutcomeDispatch executes a booking action that needs no fields.
	OutcomeDispatch
	// OutcomeRetrieve answers a medical question from the knowledge base.
	OutcomeRetrieve
	// OutcomeRespondInvalid handles a message that is neither.
	OutcomeRespondInvalid
)

// Route maps an extracted action to its outcome given the fields already
// known. Every action constant is handled explicitly; anything
// unrecognized is treated as invalid rather than guessed at.
func Route(action Action, fields map[Field]string) Outcome {
	switch action {
	case ActionAddAppointment, ActionGetAppointmentByID,
		ActionUpdateAppointment, ActionDeleteAppointment,
		ActionGetAllAppointments:
		if len(MissingFields(action, fields)) == 0 {
			return OutcomeDispatch
		}
		return OutcomeFillSlots
	case ActionMedicalQuestion:
		return OutcomeRetrieve
	case ActionInvalid, ActionNone:
		return OutcomeRespondInvalid
	default:
		return OutcomeRespondInvalid
	}
}
