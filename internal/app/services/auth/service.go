package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domainauth "github.com/krushna001m/RentEasy-sub000/internal/domain/auth"
	domainuser "github.com/krushna001m/RentEasy-sub000/internal/domain/user"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
)

const minPasswordLength = 8

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenGenerator interface {
	NewToken() (string, error)
}

// Service implements the thin identity provider: registration, login
// and bearer-token resolution. The booking core only ever sees the
// opaque user id this hands out.
type Service struct {
	Users      domainuser.Repository
	Sessions   domainauth.SessionStore
	Passwords  PasswordHasher
	Tokens     TokenGenerator
	SessionTTL time.Duration
	Logger     *slog.Logger
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domainuser.User
	Token string
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	name := strings.TrimSpace(params.Name)
	if email == "" {
		return nil, domainuser.ErrEmailRequired
	}
	if name == "" {
		return nil, domainuser.ErrNameRequired
	}
	if utf8.RuneCountInString(params.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, domainuser.ErrEmailAlreadyUsed
	} else if !errors.Is(err, domainuser.ErrNotFound) {
		return nil, err
	}

	hash, err := s.Passwords.Hash(params.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domainuser.User{
		ID:           domainuser.ID(uuid.NewString()),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	token, err := s.openSession(ctx, u.ID, now)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", "user_id", u.ID)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.Passwords.Compare(u.PasswordHash, params.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.openSession(ctx, u.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.Sessions.Delete(ctx, token)
}

// ResolveToken maps a bearer token to its user, dropping expired
// sessions on the way.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domainuser.User, error) {
	session, err := s.Sessions.ByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.Sessions.Delete(ctx, token)
		return nil, domainauth.ErrSessionExpired
	}
	return s.Users.ByID(ctx, session.UserID)
}

func (s *Service) openSession(ctx context.Context, userID domainuser.ID, now time.Time) (string, error) {
	token, err := s.Tokens.NewToken()
	if err != nil {
		return "", err
	}
	session := &domainauth.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
	}
	if s.SessionTTL > 0 {
		session.ExpiresAt = now.Add(s.SessionTTL)
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}
