// Package codes issues one-time numeric verification codes bound to a
// session id, a user and a purpose.
package codes

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/google/uuid"
)

// Purposes a code can be issued for.
const (
	PurposeOnboard = "onboard"
	PurposeReset   = "reset"
)

const (
	// CodeLength is the number of digits in a code.
	CodeLength = 6
	// MaxAttempts is how many wrong guesses a session survives.
	MaxAttempts = 5
)

// Session is an issued code.
type Session struct {
	ID        string
	UserID    string
	Purpose   string
	Code      string
	ExpiresAt time.Time
	attempts  int
}

// Store keeps pending sessions in memory. A session is removed when it is
// used, expires on verification or runs out of attempts.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Issue creates a fresh session with a random code.
func (s *Store) Issue(userID, purpose string) (Session, error) {
	code, err := common.MakeRandDigits(CodeLength)
	if err != nil {
		return Session{}, err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess

	return *sess, nil
}

// Verify consumes the session when code matches. A wrong code keeps the
// session for another try until MaxAttempts is reached.
func (s *Store) Verify(sessionID, userID, purpose, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.UserID != userID || sess.Purpose != purpose {
		return common.ErrCodeInvalid
	}

	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, sessionID)
		return common.ErrCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(sess.Code), []byte(code)) != 1 {
		sess.attempts++
		if sess.attempts >= MaxAttempts {
			delete(s.sessions, sessionID)
		}
		return common.ErrCodeInvalid
	}

	delete(s.sessions, sessionID)
	return nil
}

// Purge drops expired sessions and returns how many were removed.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
