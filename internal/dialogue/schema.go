package dialogue

// requirements lists, in prompting order, the fields each booking action
// needs before it can be dispatched.
var requirements = map[Action][]Field{
	ActionAddAppointment: {
		FieldName, FieldSurname, FieldPersonalID,
		FieldDate, FieldTime, FieldDescription,
	},
	ActionGetAppointmentByID: {FieldAppointmentID},
	ActionUpdateAppointment:  {FieldAppointmentID, FieldDate, FieldTime},
	ActionDeleteAppointment:  {FieldAppointmentID},
	ActionGetAllAppointments: nil,
}

// RequiredFields returns the ordered field list for action. The returned
// slice is a copy; callers may mutate it.
func RequiredFields(action Action) []Field {
	req, ok := requirements[action]
	if !ok {
		return nil
	}
	out := make([]Field, len(req))
	copy(out, req)
	return out
}

// MissingFields computes which required fields are still absent from the
// collected values, preserving the schema's prompting order. A field
// counts as present only when its value is non-empty.
//
// Updates are a special case: changing just the date or just the time of
// an appointment is a complete request, so when exactly one of the two is
// already supplied the other is not demanded.
func MissingFields(action Action, fields map[Field]string) []Field {
	var missing []Field
	for _, f := range requirements[action] {
		if fields[f] == "" {
			missing = append(missing, f)
		}
	}

	if action == ActionUpdateAppointment {
		hasDate := fields[FieldDate] != ""
		hasTime := fields[FieldTime] != ""
		if hasDate != hasTime {
			drop := FieldDate
			if hasDate {
				drop = FieldTime
			}
			missing = remove(missing, drop)
		}
	}
	return missing
}

func remove(fields []Field, target Field) []Field {
	var out []Field
	for _, f := range fields {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}
