package session

import (
	"errors"
	"sync/atomic"

	"github.com/golang-jwt/jwt/v5"

	"dispatch-console/internal/model"
)

var ErrInvalidated = errors.New("session invalidated")

type Claims struct {
	UserID   int64          `json:"userId"`
	FullName string         `json:"fullName"`
	Role     model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Session is the explicit, injectable auth context handed to every upstream
// call. There is no ambient token: whoever makes a request supplies the
// session, and an upstream 401/403 invalidates it for everyone holding it.
type Session struct {
	token     string
	principal model.Principal
	dead      atomic.Bool
}

// New builds a session from a login response.
func New(token string, principal model.Principal) *Session {
	return &Session{token: token, principal: principal}
}

// FromToken builds a session from a raw bearer token, reading the principal
// from the token claims. The signature is NOT verified here: the dispatch
// backend is the authority and rejects forged tokens on every call.
func FromToken(token string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	principal := model.Principal{
		UserID:   claims.UserID,
		FullName: claims.FullName,
		Role:     claims.Role,
	}
	return &Session{token: token, principal: principal}, nil
}

func (s *Session) Token() string {
	return s.token
}

func (s *Session) Principal() model.Principal {
	return s.principal
}

// Valid reports whether the session may still be used for upstream calls.
func (s *Session) Valid() bool {
	return !s.dead.Load()
}

// Invalidate marks the session dead. Called by the upstream client on
// 401/403, the analog of the forced-logout redirect in the browser console.
func (s *Session) Invalidate() {
	s.dead.Store(true)
}
