package model

import "time"

// LikeKind discriminates what catalog resource a like points at.
type LikeKind string

const (
	LikeKindAlbum  LikeKind = "album"
	LikeKindTrack  LikeKind = "track"
	LikeKindArtist LikeKind = "artist"
)

func (k LikeKind) Valid() bool {
	switch k {
	case LikeKindAlbum, LikeKindTrack, LikeKindArtist:
		return true
	}
	return false
}

type Like struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	AssociatedID string    `json:"associated_id"`
	Kind         LikeKind  `json:"kind"`
	CreatedAt    time.Time `json:"created_at"`
}
