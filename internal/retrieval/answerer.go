package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/medbot-io/medbot/internal/llm"
)

const answerSystemPrompt = "You are a helpful medical assistant."

// Answerer answers medical questions by retrieving relevant corpus
// chunks and asking the LLM to answer from them. It implements
// dialogue.Retriever.
type Answerer struct {
	store    *Store
	provider llm.Provider
	model    string
	topK     int
}

// NewAnswerer returns an Answerer retrieving topK chunks per question.
func NewAnswerer(store *Store, provider llm.Provider, model string, topK int) *Answerer {
	if topK <= 0 {
		topK = 5
	}
	return &Answerer{store: store, provider: provider, model: model, topK: topK}
}

// Answer retrieves the chunks most similar to question and completes a
// grounded answer.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	results, err := a.store.Search(ctx, question, a.topK)
	if err != nil {
		return "", fmt.Errorf("searching corpus: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a medical assistant. Answer the following question based on the provided context.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\nContext:\n", question)
	if len(results) == 0 {
		b.WriteString("(no relevant documents found)\n")
	}
	for _, r := range results {
		b.WriteString(r.Document.Content)
		b.WriteByte('\n')
	}

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model: a.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: answerSystemPrompt},
			{Role: llm.RoleUser, Content: b.String()},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("answer completion: %w", err)
	}
	return resp.Content, nil
}

const invalidFallback = "I can help you book, view, update or cancel appointments, or answer medical questions. How can I help?"

const invalidSystemPrompt = `You are the assistant of a medical practice. The user's message is neither an appointment request nor a medical question. Reply in the user's language with one short sentence explaining that you can only help with appointments and medical questions.`

// InvalidResponder redirects off-topic messages with a brief LLM reply,
// falling back to a fixed message when the model is unavailable. It
// implements dialogue.InvalidResponder.
type InvalidResponder struct {
	provider llm.Provider
	model    string
}

// NewInvalidResponder returns an InvalidResponder using the given
// provider and model. A nil provider always uses the fallback.
func NewInvalidResponder(provider llm.Provider, model string) *InvalidResponder {
	return &InvalidResponder{provider: provider, model: model}
}

// Respond returns the redirect message for an out-of-scope input.
func (r *InvalidResponder) Respond(ctx context.Context, message string) (string, error) {
	if r.provider == nil {
		return invalidFallback, nil
	}
	resp, err := r.provider.Complete(ctx, llm.CompletionRequest{
		Model: r.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: invalidSystemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		MaxTokens:   128,
		Temperature: 0.3,
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		return invalidFallback, nil
	}
	return resp.Content, nil
}
