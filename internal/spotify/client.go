package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"
)

// ErrNotFound marks the upstream "invalid id" condition. It is detected from
// the response status code, never from the error message text, and is an
// expected outcome for lookups on identifiers the catalog does not know.
var ErrNotFound = errors.New("spotify: resource not found")

// Client is a thin resource-oriented wrapper over the Spotify Web API using
// the client-credentials flow. It is safe for concurrent use; the oauth2
// transport caches and refreshes the app token internally.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("spotify client requires client id and secret")
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	httpClient := credentials.Client(context.Background())
	httpClient.Timeout = timeout

	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

func (c *Client) GetAlbum(ctx context.Context, id string) (*Album, error) {
	var album Album
	if err := c.get(ctx, "/albums/"+url.PathEscape(id), nil, &album); err != nil {
		return nil, err
	}
	return &album, nil
}

func (c *Client) GetAlbumTracks(ctx context.Context, id string, limit *int, offset *int) (*Paging[SimpleTrack], error) {
	var page Paging[SimpleTrack]
	if err := c.get(ctx, "/albums/"+url.PathEscape(id)+"/tracks", window(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetAlbums(ctx context.Context, ids []string) ([]Album, error) {
	if len(ids) == 0 {
		return []Album{}, nil
	}

	query := url.Values{"ids": {strings.Join(ids, ",")}}
	var res albumsResponse
	if err := c.get(ctx, "/albums", query, &res); err != nil {
		return nil, err
	}
	return res.Albums, nil
}

func (c *Client) GetTrack(ctx context.Context, id string) (*Track, error) {
	var track Track
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

func (c *Client) GetTracks(ctx context.Context, ids []string) ([]Track, error) {
	if len(ids) == 0 {
		return []Track{}, nil
	}

	query := url.Values{"ids": {strings.Join(ids, ",")}}
	var res tracksResponse
	if err := c.get(ctx, "/tracks", query, &res); err != nil {
		return nil, err
	}
	return res.Tracks, nil
}

func (c *Client) GetArtist(ctx context.Context, id string) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/artists/"+url.PathEscape(id), nil, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

func (c *Client) GetArtistAlbums(ctx context.Context, id string, limit *int, offset *int) (*Paging[Album], error) {
	var page Paging[Album]
	if err := c.get(ctx, "/artists/"+url.PathEscape(id)+"/albums", window(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search issues one logical search across albums, tracks and artists. The
// upstream returns the three lists already ranked by relevance; this client
// passes them through untouched.
func (c *Client) Search(ctx context.Context, q string, limit *int, offset *int) (*SearchResponse, error) {
	query := window(limit, offset)
	query.Set("q", q)
	query.Set("type", "album,track,artist")

	var res SearchResponse
	if err := c.get(ctx, "/search", query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode spotify response: %w", err)
	}
	return nil
}

// errorFromResponse classifies non-200 responses by status code. The
// upstream reports unknown and malformed identifiers as 404 and 400; both
// mean "no such resource" to callers.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var body apiErrorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrNotFound, body.Error.Message)
	default:
		return fmt.Errorf("spotify api status %d: %s", resp.StatusCode, body.Error.Message)
	}
}

func window(limit *int, offset *int) url.Values {
	query := url.Values{}
	if limit != nil {
		query.Set("limit", strconv.Itoa(*limit))
	}
	if offset != nil {
		query.Set("offset", strconv.Itoa(*offset))
	}
	return query
}
