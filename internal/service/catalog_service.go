package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-music-api/internal/model"
	"go-music-api/internal/spotify"
)

// CatalogService adapts the upstream catalog into the internal model:
// normalizes optional fields, pagination envelopes and not-found semantics
// uniformly across albums, tracks and artists, and decorates results with
// the caller's like status. Upstream not-found is an expected outcome and
// surfaces as a nil result, never as an error.
type CatalogService struct {
	catalog CatalogClient
	likes   LikeStore
}

func NewCatalogService(catalog CatalogClient, likes LikeStore) *CatalogService {
	return &CatalogService{catalog: catalog, likes: likes}
}

func (s *CatalogService) GetAlbum(ctx context.Context, id string, userID string) (*model.Album, error) {
	upstream, err := s.catalog.GetAlbum(ctx, id)
	if errors.Is(err, spotify.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamErr(err)
	}

	if len(upstream.Artists) == 0 {
		return nil, upstreamErr(fmt.Errorf("album %s has no artist", id))
	}

	// The simplified artist embedded in the album response has no images;
	// the full artist object does.
	artist, err := s.catalog.GetArtist(ctx, upstream.Artists[0].ID)
	if err != nil && !errors.Is(err, spotify.ErrNotFound) {
		return nil, upstreamErr(err)
	}

	album := mapAlbum(*upstream)
	if artist != nil {
		album.ArtistThumbnailURL = thumbnailOf(artist.Images)
	}

	if err := s.decorateLike(ctx, userID, id, &album.LikeID); err != nil {
		return nil, err
	}
	return &album, nil
}

func (s *CatalogService) GetAlbumTracks(ctx context.Context, id string, limit *int, offset *int) (*model.TrackPage, error) {
	page, err := s.catalog.GetAlbumTracks(ctx, id, limit, offset)
	if errors.Is(err, spotify.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamErr(err)
	}

	// Upstream may report a null items collection; the envelope keeps its
	// window either way.
	items := make([]model.SimpleTrack, 0, len(page.Items))
	for _, track := range page.Items {
		items = append(items, model.SimpleTrack{
			ID:         track.ID,
			Title:      track.Name,
			ArtistName: primaryArtistName(track.Artists),
		})
	}

	return &model.TrackPage{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	}, nil
}

// GetAlbums is the batched lookup: a failure on any id fails the whole
// batch, there is no per-id not-found handling.
func (s *CatalogService) GetAlbums(ctx context.Context, ids []string) ([]model.Album, error) {
	upstream, err := s.catalog.GetAlbums(ctx, ids)
	if err != nil {
		return nil, upstreamErr(err)
	}

	albums := make([]model.Album, 0, len(upstream))
	for _, album := range upstream {
		albums = append(albums, mapAlbum(album))
	}
	return albums, nil
}

func (s *CatalogService) GetTrack(ctx context.Context, id string, userID string) (*model.Track, error) {
	upstream, err := s.catalog.GetTrack(ctx, id)
	if errors.Is(err, spotify.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamErr(err)
	}

	track := mapTrack(*upstream)
	if err := s.decorateLike(ctx, userID, id, &track.LikeID); err != nil {
		return nil, err
	}
	return &track, nil
}

func (s *CatalogService) GetArtist(ctx context.Context, id string, userID string) (*model.Artist, error) {
	upstream, err := s.catalog.GetArtist(ctx, id)
	if errors.Is(err, spotify.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamErr(err)
	}

	artist := model.Artist{
		ID:           upstream.ID,
		Name:         upstream.Name,
		ThumbnailURL: thumbnailOf(upstream.Images),
	}
	if err := s.decorateLike(ctx, userID, id, &artist.LikeID); err != nil {
		return nil, err
	}
	return &artist, nil
}

func (s *CatalogService) GetArtistAlbums(ctx context.Context, id string, limit *int, offset *int) (*model.Paginated[model.Album], error) {
	page, err := s.catalog.GetArtistAlbums(ctx, id, limit, offset)
	if errors.Is(err, spotify.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, upstreamErr(err)
	}

	items := make([]model.Album, 0, len(page.Items))
	for _, album := range page.Items {
		items = append(items, mapAlbum(album))
	}

	return &model.Paginated[model.Album]{
		Items:  items,
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	}, nil
}

// Search preserves the upstream relevance ordering of all three result
// lists; nothing here re-sorts.
func (s *CatalogService) Search(ctx context.Context, q string, limit *int, offset *int) (*model.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &model.SearchResult{
			Albums:  []model.AlbumHit{},
			Songs:   []model.SongHit{},
			Artists: []model.ArtistHit{},
		}, nil
	}

	res, err := s.catalog.Search(ctx, q, limit, offset)
	if err != nil {
		return nil, upstreamErr(err)
	}

	result := &model.SearchResult{
		Albums:  make([]model.AlbumHit, 0, len(res.Albums.Items)),
		Songs:   make([]model.SongHit, 0, len(res.Tracks.Items)),
		Artists: make([]model.ArtistHit, 0, len(res.Artists.Items)),
	}

	for _, album := range res.Albums.Items {
		result.Albums = append(result.Albums, model.AlbumHit{
			ID:           album.ID,
			Title:        album.Name,
			ArtistName:   primaryArtistName(album.Artists),
			ThumbnailURL: thumbnailOf(album.Images),
		})
	}
	for _, track := range res.Tracks.Items {
		result.Songs = append(result.Songs, model.SongHit{
			ID:           track.ID,
			Title:        track.Name,
			ArtistName:   primaryArtistName(track.Artists),
			ThumbnailURL: thumbnailOf(track.Album.Images),
		})
	}
	for _, artist := range res.Artists.Items {
		result.Artists = append(result.Artists, model.ArtistHit{
			ID:           artist.ID,
			Name:         artist.Name,
			ThumbnailURL: thumbnailOf(artist.Images),
		})
	}

	return result, nil
}

func (s *CatalogService) decorateLike(ctx context.Context, userID string, associatedID string, target **string) error {
	if userID == "" {
		return nil
	}

	like, err := s.likes.FindByAssociated(ctx, userID, associatedID)
	if err != nil {
		return persistenceErr(err)
	}
	if like != nil {
		*target = &like.ID
	}
	return nil
}

func mapAlbum(album spotify.Album) model.Album {
	mapped := model.Album{
		ID:           album.ID,
		Title:        album.Name,
		AlbumType:    album.AlbumType,
		ReleaseDate:  optional(album.ReleaseDate),
		ThumbnailURL: thumbnailOf(album.Images),
	}
	if len(album.Artists) > 0 {
		mapped.ArtistID = album.Artists[0].ID
		mapped.ArtistName = album.Artists[0].Name
		mapped.ArtistThumbnailURL = thumbnailOf(album.Artists[0].Images)
	}
	return mapped
}

func mapTrack(track spotify.Track) model.Track {
	mapped := model.Track{
		ID:           track.ID,
		Title:        track.Name,
		AlbumID:      track.Album.ID,
		ThumbnailURL: thumbnailOf(track.Album.Images),
	}
	if len(track.Artists) > 0 {
		mapped.ArtistID = track.Artists[0].ID
		mapped.ArtistName = track.Artists[0].Name
	}
	return mapped
}

func primaryArtistName(artists []spotify.Artist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}

// optional maps an absent upstream field to nil rather than carrying an
// empty-string sentinel into the internal model.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func thumbnailOf(images []spotify.Image) *string {
	if len(images) == 0 {
		return nil
	}
	return optional(images[0].URL)
}
