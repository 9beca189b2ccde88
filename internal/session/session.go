package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"hridhayam-client/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrNotAdmin    = errors.New("admin access required")
)

// Session is the signed-in identity. It is handed explicitly to every operation that needs a
// user; nothing reads it from global state.
type Session struct {
	UserID    string     `json:"userId"`
	Role      Role       `json:"role"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (s *Session) Active(now time.Time) bool {
	if s == nil || s.UserID == "" {
		return false
	}
	return s.ExpiresAt == nil || now.Before(*s.ExpiresAt)
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Require returns ErrNotLoggedIn for a missing or expired session.
func (s *Session) Require(now time.Time) error {
	if !s.Active(now) {
		return ErrNotLoggedIn
	}
	return nil
}

func (s *Session) RequireAdmin(now time.Time) error {
	if err := s.Require(now); err != nil {
		return err
	}
	if !s.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

// New builds a session from a login reply. When the backend issued a JWT cookie its expiry
// bounds the session; an opaque token leaves it open-ended.
func New(userID string, role Role, name, email, token string) *Session {
	if role == "" {
		role = RoleUser
	}
	return &Session{
		UserID:    userID,
		Role:      role,
		Name:      name,
		Email:     email,
		Token:     token,
		ExpiresAt: tokenExpiry(token),
	}
}

// tokenExpiry reads exp without verifying the signature; the client never holds the secret.
func tokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time
	return &exp
}

// Store persists the session between runs. Init on start with Load, Save on login, Clear on
// logout.
type Store struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load returns the persisted session, or nil when there is none or it has expired. An expired
// session file is removed.
func (st *Store) Load() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		logger.L().Warn("discarding unreadable session file", zap.String("path", st.path), zap.Error(err))
		_ = os.Remove(st.path)
		return nil, nil
	}

	if !s.Active(st.now()) {
		logger.L().Info("session expired", zap.String("user_id", s.UserID))
		_ = os.Remove(st.path)
		return nil, nil
	}
	return &s, nil
}

func (st *Store) Save(s *Session) error {
	if s == nil || s.UserID == "" {
		return ErrNotLoggedIn
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, st.path)
}

func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
