// Package intent turns free-form chat messages into typed dialogue
// actions and field values using an LLM.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/medbot-io/medbot/internal/dialogue"
	"github.com/medbot-io/medbot/internal/llm"
)

const systemPrompt = `You are the intent classifier for a medical appointment assistant. Classify the user's message into exactly one action and extract any field values the message already contains.

Actions:
- add_appointment: the user wants to book a new appointment
- get_appointment_by_id: the user wants details of one appointment they identify by its appointment number
- update_appointment: the user wants to move an existing appointment to a new date and/or time
- delete_appointment: the user wants to cancel an appointment
- get_all_appointments: the user wants to list appointments
- medical_question: the user asks about symptoms, diseases, medication or other medical topics
- invalid: anything else (greetings, small talk, off-topic requests)

Fields (only include values the user actually stated):
- name: first name, letters only
- surname: last name, letters only
- personal_id: the patient's 6-digit personal number
- appointment_id: the appointment's numeric id
- date, time, description

appointment_id and personal_id are different identifiers. Never copy one into the other. If the user gives a number without saying which it is, omit both.

Respond with JSON only:
{"action": "<action>", "fields": {"<field>": "<value>"}}`

// LLMExtractor implements dialogue.Extractor on top of an llm.Provider.
type LLMExtractor struct {
	provider llm.Provider
	model    string
}

// NewLLMExtractor returns an extractor using the given provider and model.
func NewLLMExtractor(provider llm.Provider, model string) *LLMExtractor {
	return &LLMExtractor{provider: provider, model: model}
}

// Extract classifies message and returns the action plus any field values
// it carried. Unknown field names and empty values from the model are
// dropped; an unparseable response classifies as invalid rather than
// erroring, so only transport failures surface as errors.
func (e *LLMExtractor) Extract(ctx context.Context, message string) (dialogue.Extraction, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Model: e.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		MaxTokens:   512,
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return dialogue.Extraction{}, fmt.Errorf("intent completion: %w", err)
	}
	return parseExtraction(resp.Content), nil
}

type rawExtraction struct {
	Action string            `json:"action"`
	Fields map[string]string `json:"fields"`
}

func parseExtraction(content string) dialogue.Extraction {
	// The model may wrap the JSON in markdown fences; take the outermost
	// object.
	jsonStr := content
	if idx := strings.Index(content, "{"); idx >= 0 {
		jsonStr = content[idx:]
	}
	if idx := strings.LastIndex(jsonStr, "}"); idx >= 0 {
		jsonStr = jsonStr[:idx+1]
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return dialogue.Extraction{Action: dialogue.ActionInvalid}
	}

	ext := dialogue.Extraction{
		Action: dialogue.ParseAction(raw.Action),
		Fields: make(map[dialogue.Field]string, len(raw.Fields)),
	}
	for name, value := range raw.Fields {
		field, ok := dialogue.KnownField(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		ext.Fields[field] = strings.TrimSpace(value)
	}
	return ext
}
