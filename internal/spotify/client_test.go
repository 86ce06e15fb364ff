package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient bypasses the oauth2 transport so tests exercise only the
// resource calls against a local server.
func testClient(srv *httptest.Server) *Client {
	return &Client{baseURL: srv.URL, httpClient: srv.Client()}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func apiError(status int, message string) map[string]any {
	return map[string]any{"error": map[string]any{"status": status, "message": message}}
}

func TestClient_GetAlbum(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/albums/album-1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":           "album-1",
			"name":         "Blue Train",
			"album_type":   "album",
			"release_date": "1958-01-15",
			"artists":      []map[string]any{{"id": "artist-1", "name": "John Coltrane"}},
			"images":       []map[string]any{{"url": "https://img/1", "height": 640, "width": 640}},
		})
	}))
	defer srv.Close()

	album, err := testClient(srv).GetAlbum(context.Background(), "album-1")
	require.NoError(t, err)
	assert.Equal(t, "Blue Train", album.Name)
	require.Len(t, album.Artists, 1)
	assert.Equal(t, "artist-1", album.Artists[0].ID)
	require.Len(t, album.Images, 1)
	assert.Equal(t, "https://img/1", album.Images[0].URL)
}

func TestClient_NotFoundByStatusCode(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"404 unknown id", http.StatusNotFound},
		{"400 malformed id", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(t, w, tc.status, apiError(tc.status, "invalid id"))
			}))
			defer srv.Close()

			_, err := testClient(srv).GetAlbum(context.Background(), "nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClient_ServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, apiError(500, "server error"))
	}))
	defer srv.Close()

	_, err := testClient(srv).GetAlbum(context.Background(), "album-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_GetAlbumTracksWindow(t *testing.T) {
	t.Run("forwards limit and offset", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/albums/album-1/tracks", r.URL.Path)
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			assert.Equal(t, "20", r.URL.Query().Get("offset"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items":  []map[string]any{{"id": "t-1", "name": "Part One"}},
				"limit":  10,
				"offset": 20,
				"total":  37,
			})
		}))
		defer srv.Close()

		limit, offset := 10, 20
		page, err := testClient(srv).GetAlbumTracks(context.Background(), "album-1", &limit, &offset)
		require.NoError(t, err)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 20, page.Offset)
		assert.Equal(t, 37, page.Total)
		require.Len(t, page.Items, 1)
	})

	t.Run("omits the window when unset so upstream defaults apply", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("limit"))
			assert.False(t, r.URL.Query().Has("offset"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": nil, "limit": 20, "offset": 0, "total": 0,
			})
		}))
		defer srv.Close()

		page, err := testClient(srv).GetAlbumTracks(context.Background(), "album-1", nil, nil)
		require.NoError(t, err)
		assert.Nil(t, page.Items)
		assert.Equal(t, 20, page.Limit)
	})
}

func TestClient_GetAlbumsBatch(t *testing.T) {
	t.Run("joins ids", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/albums", r.URL.Path)
			assert.Equal(t, "a,b", r.URL.Query().Get("ids"))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"albums": []map[string]any{{"id": "a", "name": "First"}, {"id": "b", "name": "Second"}},
			})
		}))
		defer srv.Close()

		albums, err := testClient(srv).GetAlbums(context.Background(), []string{"a", "b"})
		require.NoError(t, err)
		require.Len(t, albums, 2)
	})

	t.Run("empty id list short-circuits", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Error("no request expected for an empty batch")
		}))
		defer srv.Close()

		albums, err := testClient(srv).GetAlbums(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, albums)
	})
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "giant steps", r.URL.Query().Get("q"))
		assert.Equal(t, "album,track,artist", r.URL.Query().Get("type"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"albums":  map[string]any{"items": []map[string]any{{"id": "al-1", "name": "Giant Steps"}}},
			"tracks":  map[string]any{"items": []map[string]any{{"id": "tr-1", "name": "Giant Steps"}}},
			"artists": map[string]any{"items": []map[string]any{{"id": "ar-1", "name": "John Coltrane"}}},
		})
	}))
	defer srv.Close()

	res, err := testClient(srv).Search(context.Background(), "giant steps", nil, nil)
	require.NoError(t, err)
	require.Len(t, res.Albums.Items, 1)
	require.Len(t, res.Tracks.Items, 1)
	require.Len(t, res.Artists.Items, 1)
	assert.Equal(t, "John Coltrane", res.Artists.Items[0].Name)
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{ClientID: "", ClientSecret: "secret"})
	assert.Error(t, err)

	_, err = NewClient(Config{ClientID: "id", ClientSecret: ""})
	assert.Error(t, err)
}
