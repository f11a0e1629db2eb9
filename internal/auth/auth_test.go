package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// memoryUsers is an in-memory UserStorage.
type memoryUsers struct {
	byEmail map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("user %s: %w", user.Email, storage.ErrConflict)
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	users := newMemoryUsers()
	a := NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, Registration{
		Email:      "  Alice@Example.com ",
		Name:       " Alice ",
		Username:   "alice",
		Credential: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	tests := []struct {
		name    string
		reg     Registration
		wantErr error
	}{
		{
			name:    "weak password",
			reg:     Registration{Email: "bob@example.com", Name: "Bob", Credential: "short"},
			wantErr: ErrWeakPassword,
		},
		{
			name:    "email taken regardless of case",
			reg:     Registration{Email: "ALICE@example.com", Name: "Alice 2", Credential: "password123"},
			wantErr: ErrEmailExists,
		},
		{
			name:    "username taken",
			reg:     Registration{Email: "bob@example.com", Name: "Bob", Username: "alice", Credential: "password123"},
			wantErr: ErrUsernameTaken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.reg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = a.Authenticate(ctx, "alice@example.com", "wrong password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = a.Authenticate(ctx, "nobody@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other-secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		old, err := expired.Generate(user)
		require.NoError(t, err)

		_, err = m.Validate(old)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Validate(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
