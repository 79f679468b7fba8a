package session

import (
	"container/list"
	"context"
	"sync"

	"github.com/marioraafat2252004/Slash-Analyses/internal/domain"
	"github.com/marioraafat2252004/Slash-Analyses/internal/llm"
	"github.com/rs/zerolog/log"
)

// DefaultMaxEntries bounds the registry when no cap is configured
const DefaultMaxEntries = 1000

// Session is one user's conversation with the model. History only ever
// grows, and only through the registry; there is no cap on history
// length, matching the upstream contract.
type Session struct {
	userID  string
	persona llm.Persona

	mu      sync.Mutex
	history []domain.Turn
}

// UserID returns the opaque user identifier the session is keyed by
func (s *Session) UserID() string { return s.userID }

// History returns a snapshot of the conversation so far
func (s *Session) History() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Registry maps user identifiers to live conversation sessions. It is a
// bounded LRU: when the cap is exceeded the least-recently-used session
// is evicted wholesale, and that user transparently starts a fresh
// conversation on their next message.
type Registry struct {
	gateway llm.Gateway
	persona llm.Persona
	max     int

	mu       sync.Mutex
	sessions map[string]*list.Element
	order    *list.List // front = most recently used
}

// NewRegistry creates a registry that binds each new session to a copy
// of persona. maxEntries <= 0 falls back to DefaultMaxEntries.
func NewRegistry(gateway llm.Gateway, persona llm.Persona, maxEntries int) *Registry {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Registry{
		gateway:  gateway,
		persona:  persona,
		max:      maxEntries,
		sessions: make(map[string]*list.Element),
		order:    list.New(),
	}
}

// GetOrCreate returns the session for userID, creating it with empty
// history on first sight. Get-or-create is atomic: concurrent callers
// with the same new userID all receive the same session.
func (r *Registry) GetOrCreate(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, ok := r.sessions[userID]; ok {
		r.order.MoveToFront(elem)
		return elem.Value.(*Session)
	}

	sess := &Session{userID: userID, persona: r.persona}
	r.sessions[userID] = r.order.PushFront(sess)

	if r.order.Len() > r.max {
		r.evictOldest()
	}

	return sess
}

func (r *Registry) evictOldest() {
	elem := r.order.Back()
	if elem == nil {
		return
	}
	evicted := r.order.Remove(elem).(*Session)
	delete(r.sessions, evicted.userID)
	log.Info().Str("user_id", evicted.userID).Msg("evicted least-recently-used session")
}

// Len reports the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Len()
}

// SendAndAppend sends message in the context of the user's accumulated
// history and returns the raw model text. On success the user turn and
// the model turn are appended, in that order; on gateway failure the
// history is left untouched. Calls for the same user serialize on the
// session mutex, which is held across the gateway round trip so that
// append order matches completion order.
func (r *Registry) SendAndAppend(ctx context.Context, userID, message string) (string, error) {
	sess := r.GetOrCreate(userID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	raw, err := r.gateway.SendMessage(ctx, sess.persona, sess.history, message)
	if err != nil {
		return "", err
	}

	sess.history = append(sess.history,
		domain.Turn{Role: domain.RoleUser, Content: message},
		domain.Turn{Role: domain.RoleModel, Content: raw},
	)

	return raw, nil
}
