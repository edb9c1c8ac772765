package dialogue

import (
	"context"
	"fmt"
	"log"

	"github.com/medbot-io/medbot/internal/lang"
)

// Extraction is what the intent extractor derives from a free-form message.
type Extraction struct {
	Action Action
	Fields map[Field]string
}

// Extractor derives the requested action and any field values already
// present in a message.
type Extractor interface {
	Extract(ctx context.Context, message string) (Extraction, error)
}

// Executor performs a fully-specified booking action and renders the
// result as a user-facing reply.
type Executor interface {
	Execute(ctx context.Context, action Action, fields map[Field]string) (string, error)
}

// Retriever answers a medical question from the knowledge base.
type Retriever interface {
	Answer(ctx context.Context, question string) (string, error)
}

// InvalidResponder produces the reply for messages that are neither a
// booking request nor a medical question.
type InvalidResponder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// Engine drives the slot-filling conversation. Each session moves between
// awaiting a new intent and collecting the fields that intent requires;
// once nothing is missing the action is dispatched and the session starts
// over.
type Engine struct {
	store       *Store
	extractor   Extractor
	executor    Executor
	retriever   Retriever
	invalid     InvalidResponder
	defaultLang string
}

// NewEngine wires the engine to its collaborators over a fresh session
// store. defaultLang is the language code used when detection cannot
// decide; empty falls back to the package default.
func NewEngine(extractor Extractor, executor Executor, retriever Retriever, invalid InvalidResponder, defaultLang string) *Engine {
	if defaultLang == "" {
		defaultLang = lang.DefaultCode
	}
	return &Engine{
		store:       NewStore(),
		extractor:   extractor,
		executor:    executor,
		retriever:   retriever,
		invalid:     invalid,
		defaultLang: defaultLang,
	}
}

// Sessions exposes the engine's session store, mainly for inspection in
// handlers and tests.
func (e *Engine) Sessions() *Store { return e.store }

// Turn processes one user message for the given session and returns the
// reply. Collaborator failures never leave a session stuck: the session
// is reset and a generic failure message in the session's language is
// returned.
func (e *Engine) Turn(ctx context.Context, sessionID, message string) (string, error) {
	return e.store.Update(sessionID, func(s *Session) (string, error) {
		switch s.Phase {
		case PhaseCollectingFields:
			return e.collectTurn(ctx, s, message), nil
		default:
			return e.intentTurn(ctx, s, message), nil
		}
	})
}

func (e *Engine) intentTurn(ctx context.Context, s *Session, message string) string {
	ext, err := e.extractor.Extract(ctx, message)
	if err != nil {
		return e.fail(s, "extract", err)
	}

	if code, ok := lang.Detect(message); ok {
		s.Language = code
	} else {
		s.Language = e.defaultLang
	}

	switch Route(ext.Action, ext.Fields) {
	case OutcomeRetrieve:
		answer, err := e.retriever.Answer(ctx, message)
		if err != nil {
			return e.fail(s, "retrieve", err)
		}
		s.Reset()
		return answer
	case OutcomeRespondInvalid:
		reply, err := e.invalid.Respond(ctx, message)
		if err != nil {
			return e.fail(s, "respond", err)
		}
		s.Reset()
		return reply
	case OutcomeDispatch:
		return e.dispatch(ctx, s, ext.Action, ext.Fields)
	default:
		s.Phase = PhaseCollectingFields
		s.Action = ext.Action
		s.Fields = make(map[Field]string, len(ext.Fields))
		for k, v := range ext.Fields {
			if v != "" {
				s.Fields[k] = v
			}
		}
		s.Missing = MissingFields(s.Action, s.Fields)
		return e.promptNext(s)
	}
}

func (e *Engine) collectTurn(ctx context.Context, s *Session, message string) string {
	if len(s.Missing) == 0 {
		// Should not happen, but never leave the session wedged.
		return e.dispatch(ctx, s, s.Action, s.Fields)
	}

	current := s.Missing[0]
	if !Validate(current, message) {
		return fmt.Sprintf("Wrong input. Please try again %s:", current)
	}

	s.Fields[current] = message
	s.Missing = s.Missing[1:]
	if len(s.Missing) > 0 {
		return e.promptNext(s)
	}
	return e.dispatch(ctx, s, s.Action, s.Fields)
}

func (e *Engine) promptNext(s *Session) string {
	return fmt.Sprintf("%s %s", lang.Prompt(s.Language), s.Missing[0])
}

func (e *Engine) dispatch(ctx context.Context, s *Session, action Action, fields map[Field]string) string {
	reply, err := e.executor.Execute(ctx, action, fields)
	if err != nil {
		return e.fail(s, "execute", err)
	}
	s.Reset()
	return reply
}

func (e *Engine) fail(s *Session, stage string, err error) string {
	log.Printf("dialogue: session %s: %s failed: %v", s.ID, stage, err)
	code := s.Language
	s.Reset()
	return lang.Failure(code)
}
