package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go-music-api/internal/model"
	"go-music-api/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidCredentials):
		// One branch for both unknown-user and wrong-password so the
		// response cannot be used to enumerate usernames.
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	case errors.Is(err, model.ErrInvalidToken),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch),
		errors.Is(err, model.ErrIssuerMismatch),
		errors.Is(err, model.ErrAudienceMismatch),
		errors.Is(err, model.ErrMissingSubject):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid or expired token"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusConflict
		body.Code = "ALREADY_EXISTS"
		body.Message = "Username already exists"
	case errors.Is(err, model.ErrLikeNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Like not found"
	case errors.Is(err, model.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		body.Code = "UPSTREAM_UNAVAILABLE"
		body.Message = "Catalog provider is unavailable"
	case errors.Is(err, model.ErrPersistenceUnavailable):
		status = http.StatusServiceUnavailable
		body.Code = "SERVICE_UNAVAILABLE"
		body.Message = "Storage is unavailable"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	default:
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func writeNotFound(w http.ResponseWriter, resource string, id string) {
	writeError(w, apierror.NotFound(resource+" not found", id))
}

// queryInt reads an optional integer query parameter; nil means the caller
// omitted it and upstream defaults apply.
func queryInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, apierror.BadRequest(key+" must be a non-negative integer", raw)
	}
	return &v, nil
}
