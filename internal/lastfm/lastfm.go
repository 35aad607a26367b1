// Package lastfm ranks discovered albums by Last.fm listener counts and
// looks up an artist's top tag. The integration is best-effort: a missing
// API key or a failed lookup degrades to zero listeners rather than
// failing discovery.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"tonearm/internal/config"
	"tonearm/internal/logging"
)

// Client talks to the Last.fm web service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// New builds a Client from the lastfm configuration section. A client
// without an API key is valid and reports Enabled() == false.
func New(cfg config.LastFM, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:     logging.NewComponentLogger(logger, "lastfm"),
	}
}

// Enabled reports whether popularity lookups can run.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// AlbumListeners returns the listener count for an album, or zero when the
// album is unknown or the lookup fails.
func (c *Client) AlbumListeners(ctx context.Context, artist, album string) int {
	var payload struct {
		Album struct {
			Listeners string `json:"listeners"`
		} `json:"album"`
	}
	params := url.Values{}
	params.Set("artist", artist)
	params.Set("album", album)
	if err := c.call(ctx, "album.getinfo", params, &payload); err != nil {
		c.logger.Debug("album lookup failed",
			logging.String("artist", artist), logging.String("album", album), logging.Error(err))
		return 0
	}
	listeners, err := strconv.Atoi(payload.Album.Listeners)
	if err != nil {
		return 0
	}
	return listeners
}

// ArtistTopTag returns the most common tag for an artist, or "" when none
// is known.
func (c *Client) ArtistTopTag(ctx context.Context, artist string) string {
	var payload struct {
		TopTags struct {
			Tag []struct {
				Name string `json:"name"`
			} `json:"tag"`
		} `json:"toptags"`
	}
	params := url.Values{}
	params.Set("artist", artist)
	if err := c.call(ctx, "artist.getTopTags", params, &payload); err != nil {
		return ""
	}
	if len(payload.TopTags.Tag) == 0 {
		return ""
	}
	return payload.TopTags.Tag[0].Name
}

// Ranked pairs an album title with its listener count.
type Ranked struct {
	Title     string
	Listeners int
}

// RankByListeners orders album titles by listener count, descending, with
// listener ties kept in input order. With lookups disabled the input order
// is returned with zero counts.
func (c *Client) RankByListeners(ctx context.Context, artist string, titles []string) []Ranked {
	ranked := make([]Ranked, 0, len(titles))
	for _, title := range titles {
		listeners := 0
		if c.Enabled() {
			listeners = c.AlbumListeners(ctx, artist, title)
		}
		ranked = append(ranked, Ranked{Title: title, Listeners: listeners})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Listeners > ranked[j].Listeners
	})
	return ranked
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out any) error {
	if !c.Enabled() {
		return fmt.Errorf("no api key configured")
	}
	params.Set("method", method)
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", method, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
