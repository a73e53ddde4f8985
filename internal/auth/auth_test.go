package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"resume-builder/internal/adapter/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService() *Service {
	return NewService(repository.NewMemoryUsers(), Config{
		Secret:     "test-secret",
		TokenTTL:   time.Hour,
		Issuer:     "resume-builder",
		BcryptCost: bcrypt.MinCost,
	}, zerolog.Nop())
}

func TestSignUpSignInSignOut(t *testing.T) {
	ctx := context.Background()
	s := newService()

	u, err := s.SignUp(ctx, "Jane@Example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "jane", u.Name)
	assert.NotEqual(t, []byte("secret1"), u.PasswordHash)

	token, signedIn, err := s.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, signedIn.ID)

	me, err := s.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	require.NoError(t, s.SignOut(ctx, token))
	_, err = s.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.NoError(t, s.SignOut(ctx, token))
}

func TestSignUpValidation(t *testing.T) {
	ctx := context.Background()
	s := newService()

	_, err := s.SignUp(ctx, "not-an-email", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.SignUp(ctx, "a@b.co", "12345", "")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = s.SignUp(ctx, "a@b.co", "123456", "A")
	require.NoError(t, err)
	_, err = s.SignUp(ctx, "A@B.co", "123456", "A")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	s := newService()
	_, err := s.SignUp(ctx, "jane@example.com", "secret1", "Jane")
	require.NoError(t, err)

	_, _, err = s.SignIn(ctx, "jane@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenChecks(t *testing.T) {
	ctx := context.Background()
	s := newService()
	_, err := s.SignUp(ctx, "jane@example.com", "secret1", "Jane")
	require.NoError(t, err)
	token, _, err := s.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := newService()
	other.cfg.Secret = "different"
	_, err = other.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestOnAuthChange(t *testing.T) {
	ctx := context.Background()
	s := newService()

	var mu sync.Mutex
	var kinds []EventKind
	unsubscribe := s.OnAuthChange(func(ev AuthEvent) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, ev.Kind)
	})

	_, err := s.SignUp(ctx, "jane@example.com", "secret1", "Jane")
	require.NoError(t, err)
	token, _, err := s.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.SignOut(ctx, token))

	unsubscribe()
	unsubscribe()
	_, _, err = s.SignIn(ctx, "jane@example.com", "secret1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventKind{EventSignedUp, EventSignedIn, EventSignedOut}, kinds)
}
