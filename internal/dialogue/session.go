package dialogue

import "sync"

// Phase is the dialogue state a session is in.
type Phase string

const (
	// PhaseAwaitingIntent means the next message is interpreted as a new
	// request.
	PhaseAwaitingIntent Phase = "awaiting_intent"
	// PhaseCollectingFields means the next message answers the prompt for
	// the first missing field.
	PhaseCollectingFields Phase = "collecting_fields"
)

// Session holds the slot-filling state for one conversation.
type Session struct {
	ID      string
	Phase   Phase
	Action  Action
	Fields  map[Field]string
	Missing []Field
	// Language is the code detected from the message that started the
	// current collection, so mid-collection prompts stay consistent.
	Language string
}

// NewSession returns an empty session in the awaiting-intent phase.
func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Phase:  PhaseAwaitingIntent,
		Action: ActionNone,
		Fields: make(map[Field]string),
	}
}

// Reset returns the session to the awaiting-intent phase and discards all
// collected state.
func (s *Session) Reset() {
	s.Phase = PhaseAwaitingIntent
	s.Action = ActionNone
	s.Fields = make(map[Field]string)
	s.Missing = nil
	s.Language = ""
}

func (s *Session) clone() *Session {
	c := &Session{
		ID:       s.ID,
		Phase:    s.Phase,
		Action:   s.Action,
		Fields:   make(map[Field]string, len(s.Fields)),
		Language: s.Language,
	}
	for k, v := range s.Fields {
		c.Fields[k] = v
	}
	if s.Missing != nil {
		c.Missing = make([]Field, len(s.Missing))
		copy(c.Missing, s.Missing)
	}
	return c
}

type sessionSlot struct {
	mu      sync.Mutex
	session *Session
}

// Store keeps sessions keyed by id. Lookups are safe for concurrent use,
// and Update serializes turns per session so interleaved messages for the
// same conversation cannot corrupt its state.
type Store struct {
	mu    sync.RWMutex
	slots map[string]*sessionSlot
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{slots: make(map[string]*sessionSlot)}
}

func (st *Store) slot(id string) *sessionSlot {
	st.mu.RLock()
	sl, ok := st.slots[id]
	st.mu.RUnlock()
	if ok {
		return sl
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sl, ok = st.slots[id]; ok {
		return sl
	}
	sl = &sessionSlot{session: NewSession(id)}
	st.slots[id] = sl
	return sl
}

// Update runs fn with exclusive access to the session for id, creating
// the session if it does not exist. Mutations made by fn are retained.
func (st *Store) Update(id string, fn func(*Session) (string, error)) (string, error) {
	sl := st.slot(id)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return fn(sl.session)
}

// Get returns a copy of the session for id, or nil if none exists.
// Mutating the copy does not affect the stored session.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	sl, ok := st.slots[id]
	st.mu.RUnlock()
	if !ok {
		return nil
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.session.clone()
}

// Reset clears the session for id back to the awaiting-intent phase.
// Unknown ids are a no-op.
func (st *Store) Reset(id string) {
	st.mu.RLock()
	sl, ok := st.slots[id]
	st.mu.RUnlock()
	if !ok {
		return
	}
	sl.mu.Lock()
	sl.session.Reset()
	sl.mu.Unlock()
}
