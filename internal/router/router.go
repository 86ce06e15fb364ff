package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-music-api/internal/config"
	"go-music-api/internal/handler"
	"go-music-api/internal/middleware"
)

type Handlers struct {
	Health  http.HandlerFunc
	Auth    *handler.AuthHandler
	Album   *handler.AlbumHandler
	Track   *handler.TrackHandler
	Artist  *handler.ArtistHandler
	Search  *handler.SearchHandler
	User    *handler.UserHandler
	Library *handler.LibraryHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/register", h.Auth.Register)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.With(authMiddleware.RequireAuth).Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/albums/{id}", h.Album.Get)
			protected.Get("/albums/{id}/tracks", h.Album.Tracks)
			protected.Patch("/albums/{id}/like", h.Album.SetLike)

			protected.Get("/tracks/{id}", h.Track.Get)
			protected.Patch("/tracks/{id}/like", h.Track.SetLike)

			protected.Get("/artists/{id}", h.Artist.Get)
			protected.Get("/artists/{id}/albums", h.Artist.Albums)
			protected.Patch("/artists/{id}/like", h.Artist.SetLike)

			protected.Get("/search", h.Search.Search)

			protected.Put("/me/name", h.User.SetName)
			protected.Put("/me/password", h.User.ChangePassword)
			protected.Get("/me/tracks", h.Library.LikedTracks)
			protected.Get("/me/albums", h.Library.LikedAlbums)
			protected.Delete("/me/likes/{id}", h.Library.DeleteLike)
		})
	})

	return r
}
