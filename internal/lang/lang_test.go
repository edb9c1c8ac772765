package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Bir randevu almak istiyorum lütfen", "tr"},
		{"I want to book an appointment for my knee, please", "en"},
		{"Ich möchte bitte einen Termin für morgen", "de"},
		{"Bonjour, je voudrais un rendez-vous", "fr"},
		{"Hola, quiero una cita por favor, gracias", "es"},
	}
	for _, tt := range tests {
		got := DetectOrDefault(tt.message)
		if got != tt.want {
			t.Errorf("DetectOrDefault(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestDetectTieIsStable(t *testing.T) {
	// "appointment" and "cita" each score one hit; the earlier language
	// in markerOrder must win on every run.
	for i := 0; i < 50; i++ {
		code, ok := Detect("appointment cita")
		if !ok || code != "en" {
			t.Fatalf("Detect = %q, %v on run %d, want en", code, ok, i)
		}
	}
}

func TestDetectFallsBackToDefault(t *testing.T) {
	if got := DetectOrDefault("xyzzy 12345"); got != DefaultCode {
		t.Errorf("DetectOrDefault(gibberish) = %q, want %q", got, DefaultCode)
	}
	if got := DetectOrDefault(""); got != DefaultCode {
		t.Errorf("DetectOrDefault(empty) = %q, want %q", got, DefaultCode)
	}
}

func TestPromptFallsBackToEnglish(t *testing.T) {
	if Prompt("tr") != "Eksik bilgileri girin:" {
		t.Error("wrong Turkish prompt")
	}
	if Prompt("ja") != Prompt("en") {
		t.Error("unknown code did not fall back to English")
	}
}

func TestFailureFallsBackToEnglish(t *testing.T) {
	if Failure("tr") == "" {
		t.Error("empty Turkish failure message")
	}
	if Failure("pt") != Failure("en") {
		t.Error("unknown code did not fall back to English")
	}
}
