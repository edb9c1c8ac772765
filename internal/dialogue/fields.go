package dialogue

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Field names a structured slot an appointment action can require.
type Field string

const (
	FieldName          Field = "name"
	FieldSurname       Field = "surname"
	FieldPersonalID    Field = "personal_id"
	FieldAppointmentID Field = "appointment_id"
	FieldDate          Field = "date"
	FieldTime          Field = "time"
	FieldDescription   Field = "description"
)

const maxDescriptionLen = 500

var (
	alphaPattern         = regexp.MustCompile(`^[A-Za-z]+$`)
	personalIDPattern    = regexp.MustCompile(`^\d{6}$`)
	appointmentIDPattern = regexp.MustCompile(`^[0-9]+$`)

	// Accepted clock formats: HH:MM, HH.MM, HH/MM and bare HHMM.
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{2}:\d{2}$`),
		regexp.MustCompile(`^\d{2}\.\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}$`),
		regexp.MustCompile(`^\d{4}$`),
	}

	// Numeric date forms, day-first and year-first, with -, . and / separators.
	datePatterns = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), "02-01-2006"},
		{regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`), "02.01.2006"},
		{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), "02/01/2006"},
		{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
		{regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`), "2006.01.02"},
		{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), "2006/01/02"},
	}

	// Natural form: "15 haziran 2025" or "15 june 2025".
	naturalDatePattern = regexp.MustCompile(`^(\d{1,2})\s+([\p{L}]+)\s+(\d{4})$`)
)

// monthNames maps lowercase Turkish and English month names to the
// canonical English name time.Parse understands.
var monthNames = map[string]string{
	"ocak": "January", "january": "January",
	"şubat": "February", "february": "February",
	"mart": "March", "march": "March",
	"nisan": "April", "april": "April",
	"mayıs": "May", "may": "May",
	"haziran": "June", "june": "June",
	"temmuz": "July", "july": "July",
	"ağustos": "August", "august": "August",
	"eylül": "September", "september": "September",
	"ekim": "October", "october": "October",
	"kasım": "November", "november": "November",
	"aralık": "December", "december": "December",
}

// validators maps each known field to its validation predicate. Dispatch
// through this table instead of a conditional chain so adding a field is
// a single entry.
var validators = map[Field]func(string) bool{
	FieldName:          validateAlpha,
	FieldSurname:       validateAlpha,
	FieldPersonalID:    personalIDPattern.MatchString,
	FieldAppointmentID: appointmentIDPattern.MatchString,
	FieldDate:          validateDate,
	FieldTime:          validateTime,
	FieldDescription:   validateDescription,
}

// Validate reports whether value is acceptable for the given field.
// Unknown fields are always invalid; the function never panics, so a bad
// field name reaching the engine results in a re-prompt rather than a fault.
func Validate(field Field, value string) bool {
	fn, ok := validators[field]
	if !ok {
		return false
	}
	return fn(value)
}

// KnownField reports whether s names a recognized field, returning its
// typed form.
func KnownField(s string) (Field, bool) {
	f := Field(s)
	_, ok := validators[f]
	return f, ok
}

func validateAlpha(s string) bool {
	return alphaPattern.MatchString(s)
}

func validateTime(s string) bool {
	for _, re := range timePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func validateDate(s string) bool {
	for _, p := range datePatterns {
		if p.re.MatchString(s) {
			// Pattern match alone is not enough: 32-01-2025 must fail.
			_, err := time.Parse(p.layout, s)
			return err == nil
		}
	}

	m := naturalDatePattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, ok := monthNames[strings.ToLower(m[2])]
	if !ok {
		return false
	}
	_, err := time.Parse("2 January 2006", m[1]+" "+month+" "+m[3])
	return err == nil
}

func validateDescription(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 0 && n <= maxDescriptionLen
}
