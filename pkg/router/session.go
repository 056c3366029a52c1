package router

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/limits"
	"github.com/gabrielmiguelok/livefolio/pkg/transport"
)

// ErrTooManySessions is returned when the session limit is reached.
var ErrTooManySessions = errors.New("live session limit reached")

// LiveViewSession binds one WebSocket connection to its component.
type LiveViewSession struct {
	// ID is the unique identifier for the session.
	ID string

	// Component is the live component instance.
	Component core.Component

	// Socket is the component's view of the connection.
	Socket *core.Socket

	// Transport is the underlying connection.
	Transport transport.Transport

	// Params are the query parameters of the upgrade request.
	Params core.Params

	// Session holds cookies and the visitor id.
	Session core.Session

	// CreatedAt is when the connection was accepted.
	CreatedAt time.Time

	joinRef string
	joined  bool
	slots   *slotState
	limiter *limits.TokenBucket

	closeOnce sync.Once
	mu        sync.RWMutex
}

// NewLiveViewSession creates a session for an accepted socket.
func NewLiveViewSession(socket *core.Socket, comp core.Component, params core.Params, session core.Session) *LiveViewSession {
	return &LiveViewSession{
		ID:        uuid.NewString(),
		Component: comp,
		Socket:    socket,
		Params:    params,
		Session:   session,
		CreatedAt: time.Now(),
		slots:     newSlotState(),
	}
}

// SocketID returns the id of the session's socket.
func (s *LiveViewSession) SocketID() string {
	return s.Socket.ID()
}

// MarkJoined records the join ref. It returns false if the session had
// already joined.
func (s *LiveViewSession) MarkJoined(joinRef string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.joined {
		return false
	}
	s.joined = true
	s.joinRef = joinRef
	return true
}

// IsJoined reports whether phx_join completed.
func (s *LiveViewSession) IsJoined() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joined
}

// JoinRef returns the join reference sent by the client.
func (s *LiveViewSession) JoinRef() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.joinRef
}

// LiveViewSessionManager tracks every live session of the process.
type LiveViewSessionManager struct {
	sessions    map[string]*LiveViewSession
	maxSessions int
	mu          sync.RWMutex
}

// NewLiveViewSessionManager creates a manager. maxSessions <= 0 means
// unlimited.
func NewLiveViewSessionManager(maxSessions int) *LiveViewSessionManager {
	return &LiveViewSessionManager{
		sessions:    make(map[string]*LiveViewSession),
		maxSessions: maxSessions,
	}
}

// Add registers a session, refusing it when the limit is reached.
func (m *LiveViewSessionManager) Add(s *LiveViewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return ErrTooManySessions
	}
	m.sessions[s.SocketID()] = s
	return nil
}

// Get returns the session for a socket id.
func (m *LiveViewSessionManager) Get(socketID string) (*LiveViewSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[socketID]
	return s, ok
}

// Remove forgets a session.
func (m *LiveViewSessionManager) Remove(socketID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, socketID)
}

// Count returns the number of live sessions.
func (m *LiveViewSessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Max returns the configured limit.
func (m *LiveViewSessionManager) Max() int {
	return m.maxSessions
}

// All returns a snapshot of every session.
func (m *LiveViewSessionManager) All() []*LiveViewSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*LiveViewSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, s)
	}
	return result
}
