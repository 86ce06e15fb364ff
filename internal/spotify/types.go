package spotify

// Wire shapes for the Spotify Web API responses this client consumes.
// See https://developer.spotify.com/documentation/web-api/reference/

type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type Artist struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images"`
}

type Album struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	AlbumType   string   `json:"album_type"`
	ReleaseDate string   `json:"release_date"`
	TotalTracks int      `json:"total_tracks"`
	Artists     []Artist `json:"artists"`
	Images      []Image  `json:"images"`
}

type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
	Album   Album    `json:"album"`
}

// SimpleTrack is the reduced track object inside album track listings; it
// has no album reference of its own.
type SimpleTrack struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// Paging is the upstream pagination envelope. Items may be null in the raw
// response; callers must treat that as an empty page, not an error.
type Paging[T any] struct {
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type albumsResponse struct {
	Albums []Album `json:"albums"`
}

type tracksResponse struct {
	Tracks []Track `json:"tracks"`
}

type SearchResponse struct {
	Albums  Paging[Album]  `json:"albums"`
	Tracks  Paging[Track]  `json:"tracks"`
	Artists Paging[Artist] `json:"artists"`
}

type apiErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
