package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-music-api/internal/model"
)

// TokenRepository persists the single current refresh token per user.
// Rotation safety under concurrent refreshes comes from Replace's
// conditional update rather than any in-process locking.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Get(ctx context.Context, userID string) (string, error) {
	var token string
	err := r.pool.QueryRow(ctx,
		`SELECT token FROM refresh_tokens
		 WHERE user_id = $1 AND expires_at > now()`, userID).Scan(&token)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return token, nil
}

// Set overwrites whatever refresh token the user currently holds. Login uses
// this: a fresh login starts a new session regardless of the previous one.
func (r *TokenRepository) Set(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET token = EXCLUDED.token, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`,
		userID, token, time.Now().UTC(), expiresAt)
	if err != nil {
		return fmt.Errorf("set refresh token: %w", err)
	}
	return nil
}

// Replace swaps current for next only if current is still the stored token.
// When two refreshes race, the loser's conditional update matches zero rows
// and reports ErrTokenMismatch.
func (r *TokenRepository) Replace(ctx context.Context, userID string, current string, next string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens
		 SET token = $3, created_at = $4, expires_at = $5
		 WHERE user_id = $1 AND token = $2`,
		userID, current, next, time.Now().UTC(), expiresAt)
	if err != nil {
		return fmt.Errorf("replace refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTokenMismatch
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("clean expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
