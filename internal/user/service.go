package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/session"

	"go.uber.org/zap"
)

// TokenJar is the part of the API client holding the backend's session cookie.
type TokenJar interface {
	Token() string
	ClearToken()
}

// SessionStore persists the signed-in session between runs.
type SessionStore interface {
	Save(sess *session.Session) error
	Clear() error
}

type Service interface {
	Login(ctx context.Context, creds Credentials) (*session.Session, error)
	Register(ctx context.Context, reg Registration) (*session.Session, error)
	Logout(ctx context.Context, sess *session.Session) error
	Profile(ctx context.Context, sess *session.Session) (*User, error)
	UpdateProfile(ctx context.Context, sess *session.Session, change PasswordChange) error
}

type service struct {
	backend api.Backend
	jar     TokenJar
	store   SessionStore
	now     func() time.Time
}

func NewService(backend api.Backend, jar TokenJar, store SessionStore) Service {
	return &service{backend: backend, jar: jar, store: store, now: time.Now}
}

func (s *service) Login(ctx context.Context, creds Credentials) (*session.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" {
		return nil, ErrEmailRequired
	}
	if creds.Password == "" {
		return nil, ErrPasswordRequired
	}

	log := logger.FromCtx(ctx).With(zap.String("email", creds.Email))

	var resp userResponse
	if err := s.backend.Post(ctx, "/user/login", creds, &resp); err != nil {
		var be *api.BusinessError
		if errors.As(err, &be) && be.Status == http.StatusUnauthorized {
			log.Warn("login rejected")
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		log.Error("login failed", zap.Error(err))
		return nil, fmt.Errorf("login: %w", err)
	}

	sess, err := s.begin(resp)
	if err != nil {
		return nil, err
	}

	log.Info("login service completed",
		zap.String("user_id", sess.UserID),
		zap.String("role", string(sess.Role)),
	)
	return sess, nil
}

// Register creates the account and signs the new user in.
func (s *service) Register(ctx context.Context, reg Registration) (*session.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	switch {
	case reg.Name == "":
		return nil, ErrNameRequired
	case reg.Email == "":
		return nil, ErrEmailRequired
	case reg.Password == "":
		return nil, ErrPasswordRequired
	}

	log := logger.FromCtx(ctx).With(zap.String("email", reg.Email))

	var resp userResponse
	if err := s.backend.Post(ctx, "/user/register", reg, &resp); err != nil {
		log.Error("failed to register user", zap.Error(err))
		return nil, fmt.Errorf("register: %w", err)
	}

	sess, err := s.begin(resp)
	if err != nil {
		return nil, err
	}

	log.Info("register service completed", zap.String("user_id", sess.UserID))
	return sess, nil
}

func (s *service) begin(resp userResponse) (*session.Session, error) {
	if resp.User == nil || resp.User.ID == "" {
		return nil, ErrMalformedUser
	}

	u := resp.User
	sess := session.New(u.ID, u.Role, u.Name, u.Email, s.jar.Token())
	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Logout always clears the local session, even when the backend cannot be reached.
func (s *service) Logout(ctx context.Context, sess *session.Session) error {
	log := logger.FromCtx(ctx)
	if sess != nil {
		log = log.With(zap.String("user_id", sess.UserID))
	}

	if err := s.backend.Post(ctx, "/user/logout", nil, nil); err != nil {
		log.Warn("backend logout failed", zap.Error(err))
	}

	s.jar.ClearToken()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	log.Info("logged out")
	return nil
}

func (s *service) Profile(ctx context.Context, sess *session.Session) (*User, error) {
	if err := sess.Require(s.now()); err != nil {
		return nil, err
	}

	var resp userResponse
	if err := s.backend.Post(ctx, "/user", map[string]string{"userId": sess.UserID}, &resp); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if resp.User == nil {
		return nil, ErrMalformedUser
	}
	if resp.User.Role == "" {
		resp.User.Role = sess.Role
	}
	return resp.User, nil
}

// UpdateProfile changes the account password.
func (s *service) UpdateProfile(ctx context.Context, sess *session.Session, change PasswordChange) error {
	if err := sess.Require(s.now()); err != nil {
		return err
	}
	if change.CurrentPassword == "" || change.NewPassword == "" {
		return ErrPasswordRequired
	}
	if change.CurrentPassword == change.NewPassword {
		return ErrSamePassword
	}

	req := updateRequest{
		UserID:          sess.UserID,
		CurrentPassword: change.CurrentPassword,
		NewPassword:     change.NewPassword,
	}
	if err := s.backend.Put(ctx, "/user/update", req, nil); err != nil {
		logger.FromCtx(ctx).Warn("failed to update password",
			zap.String("user_id", sess.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
