package dialogue

import "testing"

func TestValidateNames(t *testing.T) {
	tests := []struct {
		field Field
		value string
		want  bool
	}{
		{FieldName, "Ahmet", true},
		{FieldName, "ahmet", true},
		{FieldName, "Ahmet Yilmaz", false},
		{FieldName, "Ahmet1", false},
		{FieldName, "", false},
		{FieldSurname, "Yilmaz", true},
		{FieldSurname, "O'Brien", false},
	}
	for _, tt := range tests {
		if got := Validate(tt.field, tt.value); got != tt.want {
			t.Errorf("Validate(%s, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestValidateIdentifiers(t *testing.T) {
	tests := []struct {
		field Field
		value string
		want  bool
	}{
		{FieldPersonalID, "123456", true},
		{FieldPersonalID, "12345", false},
		{FieldPersonalID, "1234567", false},
		{FieldPersonalID, "12345a", false},
		{FieldAppointmentID, "1", true},
		{FieldAppointmentID, "042", true},
		{FieldAppointmentID, "", false},
		{FieldAppointmentID, "12x", false},
	}
	for _, tt := range tests {
		if got := Validate(tt.field, tt.value); got != tt.want {
			t.Errorf("Validate(%s, %q) = %v, want %v", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestValidateTime(t *testing.T) {
	valid := []string{"09:30", "14.45", "08/15", "0930"}
	invalid := []string{"9:30", "09-30", "093", "09305", "half past nine"}
	for _, v := range valid {
		if !Validate(FieldTime, v) {
			t.Errorf("Validate(time, %q) = false, want true", v)
		}
	}
	for _, v := range invalid {
		if Validate(FieldTime, v) {
			t.Errorf("Validate(time, %q) = true, want false", v)
		}
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"15-06-2025", true},
		{"15.06.2025", true},
		{"15/06/2025", true},
		{"2025-06-15", true},
		{"2025.06.15", true},
		{"2025/06/15", true},
		{"32-01-2025", false},
		{"2025-02-30", false},
		{"15 haziran 2025", true},
		{"15 Haziran 2025", true},
		{"15 june 2025", true},
		{"2 ocak 2026", true},
		{"31 şubat 2025", false},
		{"15 notamonth 2025", false},
		{"tomorrow", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Validate(FieldDate, tt.value); got != tt.want {
			t.Errorf("Validate(date, %q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateDescription(t *testing.T) {
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	if Validate(FieldDescription, "") {
		t.Error("empty description accepted")
	}
	if !Validate(FieldDescription, "knee pain after running") {
		t.Error("ordinary description rejected")
	}
	if Validate(FieldDescription, string(long)) {
		t.Error("501-byte description accepted")
	}
}

func TestValidateUnknownField(t *testing.T) {
	if Validate(Field("favorite_color"), "blue") {
		t.Error("unknown field accepted")
	}
}

func TestKnownField(t *testing.T) {
	if _, ok := KnownField("personal_id"); !ok {
		t.Error("personal_id not recognized")
	}
	if _, ok := KnownField("ssn"); ok {
		t.Error("ssn recognized")
	}
}
