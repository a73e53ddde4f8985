// Package auth signs users up and in with bcrypt password hashes and issues
// HS256 access tokens. Sign-out revokes a token by its ID until it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Config struct {
	Secret     string
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// EventKind names an auth state change.
type EventKind string

const (
	EventSignedUp  EventKind = "signed_up"
	EventSignedIn  EventKind = "signed_in"
	EventSignedOut EventKind = "signed_out"
)

// AuthEvent is delivered to OnAuthChange listeners. User is nil after a
// sign-out whose token no longer resolves to a user.
type AuthEvent struct {
	Kind EventKind
	User *domain.User
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	users UserStore
	cfg   Config
	log   zerolog.Logger
	now   func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time

	lmu       sync.RWMutex
	listeners map[int]func(AuthEvent)
	nextID    int
}

func NewService(users UserStore, cfg Config, log zerolog.Logger) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:     users,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		revoked:   map[string]time.Time{},
		listeners: map[int]func(AuthEvent){},
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	const op = "auth.SignUp"

	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.DefaultName(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info().Str("user_id", u.ID.String()).Msg("user signed up")
	s.notify(AuthEvent{Kind: EventSignedUp, User: u})
	return u, nil
}

// SignIn checks the password and issues an access token.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "auth.SignIn"

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	s.notify(AuthEvent{Kind: EventSignedIn, User: u})
	return token, u, nil
}

// SignOut revokes token. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	c, err := s.parse(token)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[c.ID] = c.ExpiresAt.Time
	s.mu.Unlock()

	var u *domain.User
	if id, err := uuid.Parse(c.Subject); err == nil {
		u, _ = s.users.GetByID(ctx, id)
	}
	s.notify(AuthEvent{Kind: EventSignedOut, User: u})
	return nil
}

// CurrentUser resolves a live token to its user.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	c, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// OnAuthChange registers fn for every sign-up, sign-in and sign-out. The
// returned func removes it.
func (s *Service) OnAuthChange(fn func(AuthEvent)) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lmu.Lock()
			delete(s.listeners, id)
			s.lmu.Unlock()
		})
	}
}

func (s *Service) notify(ev AuthEvent) {
	s.lmu.RLock()
	fns := make([]func(AuthEvent), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Service) issue(u *domain.User) (string, error) {
	now := s.now()
	c := claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(s.cfg.Secret))
}

func (s *Service) parse(token string) (*claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if c.ID == "" {
		return nil, ErrInvalidToken
	}

	s.mu.Lock()
	_, revoked := s.revoked[c.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}
	return &c, nil
}
