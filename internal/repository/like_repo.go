package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-music-api/internal/model"
)

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Set is an idempotent upsert: liking an already-liked resource returns the
// existing like instead of failing.
func (r *LikeRepository) Set(ctx context.Context, userID string, associatedID string, kind model.LikeKind) (model.Like, error) {
	like := model.Like{
		ID:           uuid.NewString(),
		UserID:       userID,
		AssociatedID: associatedID,
		Kind:         kind,
		CreatedAt:    time.Now().UTC(),
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO likes (id, user_id, associated_id, kind, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, associated_id) DO UPDATE SET kind = EXCLUDED.kind
		 RETURNING id, created_at`,
		like.ID, like.UserID, like.AssociatedID, like.Kind, like.CreatedAt).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		return model.Like{}, fmt.Errorf("set like: %w", err)
	}
	return like, nil
}

func (r *LikeRepository) Delete(ctx context.Context, likeID string, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM likes WHERE id = $1 AND user_id = $2`, likeID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLikeNotFound
	}
	return nil
}

// FindByAssociated reports the caller's like on a single resource, or nil
// when the resource is not liked.
func (r *LikeRepository) FindByAssociated(ctx context.Context, userID string, associatedID string) (*model.Like, error) {
	var like model.Like
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, associated_id, kind, created_at
		 FROM likes WHERE user_id = $1 AND associated_id = $2`,
		userID, associatedID).
		Scan(&like.ID, &like.UserID, &like.AssociatedID, &like.Kind, &like.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find like: %w", err)
	}
	return &like, nil
}

func (r *LikeRepository) FindByKind(ctx context.Context, userID string, kind model.LikeKind, limit int, offset int) ([]model.Like, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = $1 AND kind = $2`,
		userID, kind).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count likes: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, associated_id, kind, created_at
		 FROM likes WHERE user_id = $1 AND kind = $2
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		userID, kind, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	likes := make([]model.Like, 0)
	for rows.Next() {
		var like model.Like
		if err := rows.Scan(&like.ID, &like.UserID, &like.AssociatedID, &like.Kind, &like.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, like)
	}
	return likes, total, rows.Err()
}
