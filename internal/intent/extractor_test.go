package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/medbot-io/medbot/internal/dialogue"
	"github.com/medbot-io/medbot/internal/llm"
)

type stubProvider struct {
	content string
	err     error
	last    llm.CompletionRequest
}

func (s *stubProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestExtractParsesActionAndFields(t *testing.T) {
	p := &stubProvider{content: `{"action": "add_appointment", "fields": {"name": "Ahmet", "surname": "Yilmaz"}}`}
	ex := NewLLMExtractor(p, "gpt-4o-mini")

	got, err := ex.Extract(context.Background(), "Book an appointment for Ahmet Yilmaz")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != dialogue.ActionAddAppointment {
		t.Fatalf("action = %s", got.Action)
	}
	if got.Fields[dialogue.FieldName] != "Ahmet" || got.Fields[dialogue.FieldSurname] != "Yilmaz" {
		t.Fatalf("fields = %v", got.Fields)
	}
	if !p.last.JSONMode {
		t.Error("request not in JSON mode")
	}
	if p.last.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", p.last.Model)
	}
}

func TestExtractStripsMarkdownFences(t *testing.T) {
	p := &stubProvider{content: "```json\n{\"action\": \"delete_appointment\", \"fields\": {\"appointment_id\": \"7\"}}\n```"}
	ex := NewLLMExtractor(p, "m")

	got, err := ex.Extract(context.Background(), "cancel appointment 7")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != dialogue.ActionDeleteAppointment {
		t.Fatalf("action = %s", got.Action)
	}
	if got.Fields[dialogue.FieldAppointmentID] != "7" {
		t.Fatalf("fields = %v", got.Fields)
	}
}

func TestExtractDropsUnknownAndEmptyFields(t *testing.T) {
	p := &stubProvider{content: `{"action": "add_appointment", "fields": {"name": " Ahmet ", "ssn": "999", "date": ""}}`}
	ex := NewLLMExtractor(p, "m")

	got, err := ex.Extract(context.Background(), "book")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Fields) != 1 || got.Fields[dialogue.FieldName] != "Ahmet" {
		t.Fatalf("fields = %v", got.Fields)
	}
}

func TestExtractUnknownActionIsInvalid(t *testing.T) {
	p := &stubProvider{content: `{"action": "sing_a_song", "fields": {}}`}
	ex := NewLLMExtractor(p, "m")

	got, err := ex.Extract(context.Background(), "sing")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != dialogue.ActionInvalid {
		t.Fatalf("action = %s", got.Action)
	}
}

func TestExtractGarbageResponseIsInvalid(t *testing.T) {
	p := &stubProvider{content: "I could not classify that."}
	ex := NewLLMExtractor(p, "m")

	got, err := ex.Extract(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got.Action != dialogue.ActionInvalid {
		t.Fatalf("action = %s", got.Action)
	}
}

func TestExtractProviderError(t *testing.T) {
	p := &stubProvider{err: errors.New("timeout")}
	ex := NewLLMExtractor(p, "m")

	if _, err := ex.Extract(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}
