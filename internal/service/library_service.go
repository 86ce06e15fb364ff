package service

import (
	"context"

	"go-music-api/internal/model"
	"go-music-api/pkg/apierror"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

// LibraryService manages the user's liked items and lists them hydrated
// with catalog data via the batched upstream endpoints.
type LibraryService struct {
	likes   LikeStore
	catalog CatalogClient
}

func NewLibraryService(likes LikeStore, catalog CatalogClient) *LibraryService {
	return &LibraryService{likes: likes, catalog: catalog}
}

func (s *LibraryService) SetLike(ctx context.Context, userID string, associatedID string, kind model.LikeKind) (model.Like, error) {
	if associatedID == "" {
		return model.Like{}, apierror.BadRequest("resource id is required", "id")
	}
	if !kind.Valid() {
		return model.Like{}, apierror.BadRequest("invalid like kind", string(kind))
	}

	like, err := s.likes.Set(ctx, userID, associatedID, kind)
	if err != nil {
		return model.Like{}, persistenceErr(err)
	}
	return like, nil
}

func (s *LibraryService) DeleteLike(ctx context.Context, userID string, likeID string) error {
	if likeID == "" {
		return apierror.BadRequest("like id is required", "id")
	}

	if err := s.likes.Delete(ctx, likeID, userID); err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (s *LibraryService) FindLikedTracks(ctx context.Context, userID string, limit *int, offset *int) (model.Paginated[model.Track], error) {
	window := pageWindow(limit, offset)

	likes, total, err := s.likes.FindByKind(ctx, userID, model.LikeKindTrack, window.limit, window.offset)
	if err != nil {
		return model.Paginated[model.Track]{}, persistenceErr(err)
	}

	upstream, err := s.catalog.GetTracks(ctx, associatedIDs(likes))
	if err != nil {
		return model.Paginated[model.Track]{}, upstreamErr(err)
	}

	likeByAssociated := indexLikes(likes)
	items := make([]model.Track, 0, len(upstream))
	for _, track := range upstream {
		mapped := mapTrack(track)
		if like, ok := likeByAssociated[track.ID]; ok {
			id := like.ID
			mapped.LikeID = &id
		}
		items = append(items, mapped)
	}

	return model.Paginated[model.Track]{
		Items:  items,
		Limit:  window.limit,
		Offset: window.offset,
		Total:  total,
	}, nil
}

func (s *LibraryService) FindLikedAlbums(ctx context.Context, userID string, limit *int, offset *int) (model.Paginated[model.Album], error) {
	window := pageWindow(limit, offset)

	likes, total, err := s.likes.FindByKind(ctx, userID, model.LikeKindAlbum, window.limit, window.offset)
	if err != nil {
		return model.Paginated[model.Album]{}, persistenceErr(err)
	}

	upstream, err := s.catalog.GetAlbums(ctx, associatedIDs(likes))
	if err != nil {
		return model.Paginated[model.Album]{}, upstreamErr(err)
	}

	likeByAssociated := indexLikes(likes)
	items := make([]model.Album, 0, len(upstream))
	for _, album := range upstream {
		mapped := mapAlbum(album)
		if like, ok := likeByAssociated[album.ID]; ok {
			id := like.ID
			mapped.LikeID = &id
		}
		items = append(items, mapped)
	}

	return model.Paginated[model.Album]{
		Items:  items,
		Limit:  window.limit,
		Offset: window.offset,
		Total:  total,
	}, nil
}

type window struct {
	limit  int
	offset int
}

func pageWindow(limit *int, offset *int) window {
	w := window{limit: defaultPageLimit}
	if limit != nil && *limit > 0 {
		w.limit = min(*limit, maxPageLimit)
	}
	if offset != nil && *offset > 0 {
		w.offset = *offset
	}
	return w
}

func associatedIDs(likes []model.Like) []string {
	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.AssociatedID)
	}
	return ids
}

func indexLikes(likes []model.Like) map[string]model.Like {
	index := make(map[string]model.Like, len(likes))
	for _, like := range likes {
		index[like.AssociatedID] = like
	}
	return index
}
