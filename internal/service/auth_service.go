package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-music-api/internal/model"
	"go-music-api/internal/token"
	"go-music-api/pkg/apierror"
)

// AuthService owns the session lifecycle: login issues an access/refresh
// pair, refresh rotates the pair (the previous refresh token becomes
// unusable), logout revokes the persisted refresh token. One active session
// per user: a new login overwrites whatever refresh token was stored.
type AuthService struct {
	signer   *token.Signer
	identity *IdentityValidator
	users    UserStore
	tokens   TokenStore
}

func NewAuthService(signer *token.Signer, identity *IdentityValidator, users UserStore, tokens TokenStore) *AuthService {
	return &AuthService{
		signer:   signer,
		identity: identity,
		users:    users,
		tokens:   tokens,
	}
}

func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenPair, error) {
	user, err := s.identity.Verify(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return model.TokenPair{}, err
	}
	if user == nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, refreshToken, err := s.issuePair(user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	expiresAt := time.Now().UTC().Add(s.signer.RefreshTTL())
	if err := s.tokens.Set(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return model.TokenPair{}, persistenceErr(err)
	}

	return pair, nil
}

func (s *AuthService) Register(ctx context.Context, username string, password string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.AuthUser{}, apierror.BadRequest("username and password are required", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.AuthUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, persistenceErr(err)
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Name: user.Name}, nil
}

// Refresh validates the presented refresh token, requires it to exactly
// match the persisted one for its subject, and rotates: the new pair is
// stored through a conditional update so a replayed or raced token observes
// ErrTokenMismatch.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.signer.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}
	if claims.UserID == "" {
		return model.TokenPair{}, model.ErrMissingSubject
	}

	stored, err := s.tokens.Get(ctx, claims.UserID)
	if err != nil {
		return model.TokenPair{}, persistenceErr(err)
	}
	if stored != refreshToken {
		return model.TokenPair{}, model.ErrTokenMismatch
	}

	pair, nextRefresh, err := s.issuePair(claims.UserID)
	if err != nil {
		return model.TokenPair{}, err
	}

	expiresAt := time.Now().UTC().Add(s.signer.RefreshTTL())
	if err := s.tokens.Replace(ctx, claims.UserID, refreshToken, nextRefresh, expiresAt); err != nil {
		return model.TokenPair{}, persistenceErr(err)
	}

	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		return persistenceErr(err)
	}
	return nil
}

// CurrentUser validates an access token and returns the subject user id.
func (s *AuthService) CurrentUser(accessToken string) (string, error) {
	claims, err := s.signer.ValidateAccessToken(accessToken)
	if err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", model.ErrMissingSubject
	}
	return claims.UserID, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, persistenceErr(err)
	}
	return model.AuthUser{ID: user.ID, Username: user.Username, Name: user.Name}, nil
}

func (s *AuthService) SetName(ctx context.Context, userID string, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apierror.BadRequest("name is required", "name")
	}

	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, currentPassword string, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return persistenceErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (s *AuthService) issuePair(userID string) (model.TokenPair, string, error) {
	accessToken, err := s.signer.IssueAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, "", err
	}

	refreshToken, err := s.signer.IssueRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, "", err
	}

	pair := model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.signer.AccessTTL().Seconds()),
	}
	return pair, refreshToken, nil
}
