package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"go-music-api/internal/model"
	"go-music-api/internal/spotify"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserStore) UpdateName(ctx context.Context, userID string, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// fakeTokenStore is an in-memory TokenStore with the same conditional-update
// rotation semantics as the Postgres repository.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]string{}}
}

func (s *fakeTokenStore) Get(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[userID]
	if !ok {
		return "", model.ErrInvalidToken
	}
	return token, nil
}

func (s *fakeTokenStore) Set(_ context.Context, userID string, token string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[userID] = token
	return nil
}

func (s *fakeTokenStore) Replace(_ context.Context, userID string, current string, next string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens[userID] != current {
		return model.ErrTokenMismatch
	}
	s.tokens[userID] = next
	return nil
}

func (s *fakeTokenStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, userID)
	return nil
}

type mockLikeStore struct {
	mock.Mock
}

func (m *mockLikeStore) Set(ctx context.Context, userID string, associatedID string, kind model.LikeKind) (model.Like, error) {
	args := m.Called(ctx, userID, associatedID, kind)
	return args.Get(0).(model.Like), args.Error(1)
}

func (m *mockLikeStore) Delete(ctx context.Context, likeID string, userID string) error {
	args := m.Called(ctx, likeID, userID)
	return args.Error(0)
}

func (m *mockLikeStore) FindByAssociated(ctx context.Context, userID string, associatedID string) (*model.Like, error) {
	args := m.Called(ctx, userID, associatedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Like), args.Error(1)
}

func (m *mockLikeStore) FindByKind(ctx context.Context, userID string, kind model.LikeKind, limit int, offset int) ([]model.Like, int, error) {
	args := m.Called(ctx, userID, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Like), args.Int(1), args.Error(2)
}

type mockCatalogClient struct {
	mock.Mock
}

func (m *mockCatalogClient) GetAlbum(ctx context.Context, id string) (*spotify.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.Album), args.Error(1)
}

func (m *mockCatalogClient) GetAlbumTracks(ctx context.Context, id string, limit *int, offset *int) (*spotify.Paging[spotify.SimpleTrack], error) {
	args := m.Called(ctx, id, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.Paging[spotify.SimpleTrack]), args.Error(1)
}

func (m *mockCatalogClient) GetAlbums(ctx context.Context, ids []string) ([]spotify.Album, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spotify.Album), args.Error(1)
}

func (m *mockCatalogClient) GetTrack(ctx context.Context, id string) (*spotify.Track, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.Track), args.Error(1)
}

func (m *mockCatalogClient) GetTracks(ctx context.Context, ids []string) ([]spotify.Track, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]spotify.Track), args.Error(1)
}

func (m *mockCatalogClient) GetArtist(ctx context.Context, id string) (*spotify.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.Artist), args.Error(1)
}

func (m *mockCatalogClient) GetArtistAlbums(ctx context.Context, id string, limit *int, offset *int) (*spotify.Paging[spotify.Album], error) {
	args := m.Called(ctx, id, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.Paging[spotify.Album]), args.Error(1)
}

func (m *mockCatalogClient) Search(ctx context.Context, q string, limit *int, offset *int) (*spotify.SearchResponse, error) {
	args := m.Called(ctx, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spotify.SearchResponse), args.Error(1)
}
