package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-music-api/internal/model"
	"go-music-api/internal/token"
)

func newTestSigner(t *testing.T) *token.Signer {
	t.Helper()

	signer, err := token.NewSigner(token.Config{
		Issuer:     "music-api",
		Audience:   "music-app",
		AccessKey:  "access-key-for-tests",
		RefreshKey: "refresh-key-for-tests",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 168 * time.Hour,
	})
	require.NoError(t, err)
	return signer
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_LoginThenCurrentUser(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}
	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

	pair, err := svc.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), pair.ExpiresIn)

	userID, err := svc.CurrentUser(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, userID)
}

func TestAuthService_LoginFailureIsUniform(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}
	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)
	users.On("FindByUsername", mock.Anything, "nouser").Return(model.User{}, model.ErrUserNotFound)

	_, wrongPassword := svc.Login(context.Background(), "alice", "wrong-pw")
	_, unknownUser := svc.Login(context.Background(), "nouser", "anything")

	assert.ErrorIs(t, wrongPassword, model.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, model.ErrInvalidCredentials)
	// Identical error content: nothing distinguishes the two failures.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_RefreshRotation(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}
	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

	pair, err := svc.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the rotated-out token must fail.
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrTokenMismatch)

	// The new token still works.
	_, err = svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshRejectsForgedToken(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuthService_RefreshRejectsAccessToken(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	signer := newTestSigner(t)
	svc := NewAuthService(signer, NewIdentityValidator(users), users, tokens)

	accessToken, err := signer.IssueAccessToken("user-alice")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}
	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

	pair, err := svc.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), alice.ID))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestAuthService_LoginOverwritesPriorSession(t *testing.T) {
	users := new(mockUserStore)
	tokens := newFakeTokenStore()
	svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, tokens)

	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "correct-pw"),
	}
	users.On("FindByUsername", mock.Anything, "alice").Return(alice, nil)

	first, err := svc.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)

	// The first session's refresh token was overwritten by the second login.
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, model.ErrTokenMismatch)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		users := new(mockUserStore)
		svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, newFakeTokenStore())

		users.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
			if u.Username != "bob" || u.ID == "" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
		})).Return(nil)

		user, err := svc.Register(context.Background(), "bob", "secret")
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		users.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := new(mockUserStore)
		svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, newFakeTokenStore())

		users.On("Create", mock.Anything, mock.Anything).Return(model.ErrUserAlreadyExists)

		_, err := svc.Register(context.Background(), "bob", "secret")
		assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		users := new(mockUserStore)
		svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, newFakeTokenStore())

		_, err := svc.Register(context.Background(), "", "secret")
		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	alice := model.User{
		ID:           "user-alice",
		Username:     "alice",
		PasswordHash: hashPassword(t, "current-pw"),
	}

	t.Run("rehashes on success", func(t *testing.T) {
		users := new(mockUserStore)
		svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, newFakeTokenStore())

		users.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)
		users.On("UpdatePassword", mock.Anything, alice.ID, mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("next-pw")) == nil
		})).Return(nil)

		require.NoError(t, svc.ChangePassword(context.Background(), alice.ID, "current-pw", "next-pw"))
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := new(mockUserStore)
		svc := NewAuthService(newTestSigner(t), NewIdentityValidator(users), users, newFakeTokenStore())

		users.On("FindByID", mock.Anything, alice.ID).Return(alice, nil)

		err := svc.ChangePassword(context.Background(), alice.ID, "wrong-pw", "next-pw")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
		users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_CurrentUserMissingSubject(t *testing.T) {
	users := new(mockUserStore)
	signer := newTestSigner(t)
	svc := NewAuthService(signer, NewIdentityValidator(users), users, newFakeTokenStore())

	accessToken, err := signer.IssueAccessToken("")
	require.NoError(t, err)

	_, err = svc.CurrentUser(accessToken)
	assert.ErrorIs(t, err, model.ErrMissingSubject)
}

func TestIdentityValidator_PersistenceOutage(t *testing.T) {
	users := new(mockUserStore)
	validator := NewIdentityValidator(users)

	users.On("FindByUsername", mock.Anything, "alice").
		Return(model.User{}, errors.New("connection refused"))

	_, err := validator.Verify(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, model.ErrPersistenceUnavailable)
}
