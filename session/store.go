package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// defaultMaxTurns bounds history to this many user/assistant exchanges.
const defaultMaxTurns = 2

// messageRole distinguishes the two speakers in a rendered history.
type messageRole string

const (
	roleUser      messageRole = "User"
	roleAssistant messageRole = "Assistant"
)

// message is one stored conversation turn.
type message struct {
	role    messageRole
	content string
}

// state is the per-session record. Its mutex serializes appends and reads
// for that session only.
type state struct {
	mu       sync.Mutex
	messages []message
}

// Store holds conversation history for all active sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*state
	maxTurns int
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithMaxTurns sets how many exchanges a session retains.
// Default is 2.
func WithMaxTurns(n int) Option {
	return func(s *Store) error {
		if n <= 0 {
			return fmt.Errorf("max turns must be positive, got %d", n)
		}
		s.maxTurns = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates an empty session store.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		sessions: make(map[string]*state),
		maxTurns: defaultMaxTurns,
		logger:   slog.Default().With("component", "session-store"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewSessionID generates a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// getOrCreate returns the session's state, creating it if absent.
func (s *Store) getOrCreate(sessionID string) *state {
	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.sessions[sessionID]; ok {
		return st
	}
	st = &state{}
	s.sessions[sessionID] = st
	s.logger.Debug("created session", "sessionID", sessionID)
	return st
}

// Append records one user/assistant exchange, then truncates the session
// to the retention bound, dropping the oldest messages first.
func (s *Store) Append(sessionID, userMessage, assistantMessage string) {
	st := s.getOrCreate(sessionID)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.messages = append(st.messages,
		message{role: roleUser, content: userMessage},
		message{role: roleAssistant, content: assistantMessage},
	)

	if limit := 2 * s.maxTurns; len(st.messages) > limit {
		st.messages = st.messages[len(st.messages)-limit:]
	}
}

// History renders the session's retained conversation as alternating
// "User:"/"Assistant:" lines. Returns the empty string for an unknown or
// empty session.
func (s *Store) History(sessionID string) string {
	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return ""
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.messages) == 0 {
		return ""
	}

	lines := make([]string, len(st.messages))
	for i, m := range st.messages {
		lines[i] = fmt.Sprintf("%s: %s", m.role, m.content)
	}
	return strings.Join(lines, "\n")
}

// Clear removes one session entirely.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
