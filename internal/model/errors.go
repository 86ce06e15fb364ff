package model

import "errors"

var (
	// Credential and token errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrIssuerMismatch     = errors.New("token issuer mismatch")
	ErrAudienceMismatch   = errors.New("token audience mismatch")
	ErrTokenMismatch      = errors.New("refresh token mismatch")
	ErrMissingSubject     = errors.New("token has no subject")

	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Like related errors
	ErrLikeNotFound = errors.New("like not found")

	// Collaborator outages, distinct from validation failures so callers
	// can tell "your token is bad" apart from "we currently can't check".
	ErrUpstreamUnavailable    = errors.New("catalog upstream unavailable")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
