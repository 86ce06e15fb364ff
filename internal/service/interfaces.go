package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-music-api/internal/model"
	"go-music-api/internal/spotify"
)

// Collaborator contracts the services consume. The concrete implementations
// live in internal/repository and internal/spotify; the services only see
// these interfaces so tests can substitute fakes.

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	UpdateName(ctx context.Context, userID string, name string) error
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

type TokenStore interface {
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID string, token string, expiresAt time.Time) error
	Replace(ctx context.Context, userID string, current string, next string, expiresAt time.Time) error
	Delete(ctx context.Context, userID string) error
}

type LikeStore interface {
	Set(ctx context.Context, userID string, associatedID string, kind model.LikeKind) (model.Like, error)
	Delete(ctx context.Context, likeID string, userID string) error
	FindByAssociated(ctx context.Context, userID string, associatedID string) (*model.Like, error)
	FindByKind(ctx context.Context, userID string, kind model.LikeKind, limit int, offset int) ([]model.Like, int, error)
}

type CatalogClient interface {
	GetAlbum(ctx context.Context, id string) (*spotify.Album, error)
	GetAlbumTracks(ctx context.Context, id string, limit *int, offset *int) (*spotify.Paging[spotify.SimpleTrack], error)
	GetAlbums(ctx context.Context, ids []string) ([]spotify.Album, error)
	GetTrack(ctx context.Context, id string) (*spotify.Track, error)
	GetTracks(ctx context.Context, ids []string) ([]spotify.Track, error)
	GetArtist(ctx context.Context, id string) (*spotify.Artist, error)
	GetArtistAlbums(ctx context.Context, id string, limit *int, offset *int) (*spotify.Paging[spotify.Album], error)
	Search(ctx context.Context, q string, limit *int, offset *int) (*spotify.SearchResponse, error)
}

// persistenceErr folds unexpected storage failures into the single outage
// condition callers distinguish from validation failures. Typed sentinel
// errors pass through untouched.
func persistenceErr(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		model.ErrUserNotFound,
		model.ErrUserAlreadyExists,
		model.ErrInvalidToken,
		model.ErrTokenMismatch,
		model.ErrLikeNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", model.ErrPersistenceUnavailable, err)
}

// upstreamErr marks any non-not-found catalog failure as an upstream outage.
func upstreamErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
}
