package promo

import (
	"sync"

	"github.com/edenalpha687/pumpfun-trending-bot/internal/dexscreener"
)

// State is an onboarding session state.
type State string

const (
	StateAwaitAddress State = "await_address"
	StateAwaitPackage State = "await_package"
	StateAwaitPayment State = "await_payment"
)

// Session is one user's onboarding progress. A session is created by Begin,
// advanced only by its own user's input, and removed once a payment is
// accepted. Abandoned sessions stay inert until Begin overwrites them.
type Session struct {
	UserID      int64
	State       State
	Mint        string
	Token       *dexscreener.TokenInfo
	PackageID   string
	ExpectedSOL float64
}

// SessionStore holds at most one live session per user.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
	}
}

// Begin starts a fresh session for the user, replacing any previous one.
func (s *SessionStore) Begin(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{UserID: userID, State: StateAwaitAddress}
	s.sessions[userID] = sess
	return sess
}

// Get returns the user's session, or nil.
func (s *SessionStore) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[userID]
}

// Set stores the session under its user id.
func (s *SessionStore) Set(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = sess
}

// Clear removes the user's session.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
