package model

// Catalog resources are owned by the upstream provider: this system only
// fetches and re-shapes them, it never creates or mutates one. Optional
// upstream fields stay pointers so "unknown" is distinguishable from "empty".

type Album struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	ReleaseDate        *string `json:"release_date,omitempty"`
	ThumbnailURL       *string `json:"thumbnail_url,omitempty"`
	AlbumType          string  `json:"album_type"`
	ArtistID           string  `json:"artist_id"`
	ArtistName         string  `json:"artist_name"`
	ArtistThumbnailURL *string `json:"artist_thumbnail_url,omitempty"`
	LikeID             *string `json:"like_id,omitempty"`
}

type Track struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	ArtistID     string  `json:"artist_id"`
	ArtistName   string  `json:"artist_name"`
	AlbumID      string  `json:"album_id"`
	LikeID       *string `json:"like_id,omitempty"`
}

type Artist struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	LikeID       *string `json:"like_id,omitempty"`
}

// SimpleTrack is the reduced track shape used inside album track listings.
type SimpleTrack struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ArtistName string `json:"artist_name"`
}

// TrackPage is the uniform pagination envelope for album track listings.
type TrackPage struct {
	Items  []SimpleTrack `json:"items"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
	Total  int           `json:"total"`
}

// Paginated is the envelope every paginated library listing returns.
type Paginated[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Search hits are discriminated by slice, not by a shared base type; each
// kind carries only the fields relevant to it. Ordering within each slice is
// the upstream relevance ranking and must not be re-sorted.

type AlbumHit struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ArtistName   string  `json:"artist_name"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type SongHit struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ArtistName   string  `json:"artist_name"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type ArtistHit struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
}

type SearchResult struct {
	Albums  []AlbumHit  `json:"albums"`
	Songs   []SongHit   `json:"songs"`
	Artists []ArtistHit `json:"artists"`
}
