package remote

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tonearm/internal/catalog"
	"tonearm/internal/config"
	"tonearm/internal/library"
	"tonearm/internal/logging"
	"tonearm/internal/services"
)

// Artist is one search hit from the remote catalog.
type Artist struct {
	ID   int64
	Name string
}

// Client talks to the streaming catalog API.
type Client struct {
	baseURL        string
	appID          string
	secret         string
	minAlbumTracks int
	httpClient     *http.Client
	logger         *slog.Logger

	// now is swapped in tests to pin the auth timestamp.
	now func() time.Time
}

// New builds a Client from the remote configuration section.
func New(cfg config.Remote, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.AppID) == "" || strings.TrimSpace(cfg.Secret) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "", "remote client",
			"remote.app_id and remote.secret must be set (or QOBUZ_APP_ID / QOBUZ_SECRET)", nil)
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		appID:          cfg.AppID,
		secret:         cfg.Secret,
		minAlbumTracks: cfg.MinAlbumTracks,
		httpClient:     &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger:         logging.NewComponentLogger(logger, "remote"),
		now:            time.Now,
	}, nil
}

// AlbumURL renders the public page URL for an album, used by the open
// action and handed to the downloader.
func (c *Client) AlbumURL(albumID string) string {
	return "https://www.qobuz.com/album/" + albumID
}

// SearchArtist finds the catalog artist matching name. Matching accepts
// the name with or without a leading "The" on either side; a miss is a
// not-found error, which the caller treats as recoverable.
func (c *Client) SearchArtist(ctx context.Context, name string) (Artist, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("limit", "20")

	var payload struct {
		Artists struct {
			Items []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
		} `json:"artists"`
	}
	if err := c.get(ctx, "/artist/search", params, &payload); err != nil {
		return Artist{}, err
	}

	variants := make([]string, 0, 2)
	for _, variant := range library.SearchVariants(name) {
		variants = append(variants, strings.ToLower(variant))
	}

	// Exact match on any variant first, then a match after stripping a
	// leading "The" from the catalog name.
	for _, item := range payload.Artists.Items {
		lowered := strings.ToLower(item.Name)
		for _, variant := range variants {
			if lowered == variant {
				return Artist{ID: item.ID, Name: item.Name}, nil
			}
		}
	}
	for _, item := range payload.Artists.Items {
		lowered := strings.ToLower(library.StripArticle(item.Name))
		for _, variant := range variants {
			if lowered == variant {
				return Artist{ID: item.ID, Name: item.Name}, nil
			}
		}
	}

	return Artist{}, services.Wrap(services.ErrNotFound, "", "artist search",
		fmt.Sprintf("no catalog artist matches %q", name), nil)
}

// ArtistAlbums fetches every studio album edition credited to the artist.
// Singles below the configured track minimum, compilations, live albums,
// and albums credited to other artists are filtered out.
func (c *Client) ArtistAlbums(ctx context.Context, artistID int64) ([]catalog.Edition, error) {
	params := url.Values{}
	params.Set("artist_id", strconv.FormatInt(artistID, 10))
	params.Set("extra", "albums")
	params.Set("limit", "500")

	var payload struct {
		Name   string `json:"name"`
		Albums struct {
			Items []struct {
				ID          json.Number `json:"id"`
				Title       string      `json:"title"`
				TracksCount int         `json:"tracks_count"`
				ReleaseDate string      `json:"release_date_original"`
				BitDepth    int         `json:"maximum_bit_depth"`
				SampleRate  float64     `json:"maximum_sampling_rate"`
				Artist      struct {
					ID int64 `json:"id"`
				} `json:"artist"`
			} `json:"items"`
		} `json:"albums"`
	}
	if err := c.get(ctx, "/artist/get", params, &payload); err != nil {
		return nil, err
	}

	editions := make([]catalog.Edition, 0, len(payload.Albums.Items))
	for _, item := range payload.Albums.Items {
		// Appearances and compilations carry another artist's credit.
		if item.Artist.ID != artistID {
			continue
		}
		if item.TracksCount < c.minAlbumTracks {
			continue
		}
		if IsCompilationOrLive(item.Title) {
			continue
		}
		bitDepth := item.BitDepth
		if bitDepth == 0 {
			bitDepth = 16
		}
		sampleRate := item.SampleRate
		if sampleRate == 0 {
			sampleRate = 44.1
		}
		edition, err := catalog.NewEdition(item.ID.String(), item.Title,
			parseReleaseYear(item.ReleaseDate), item.TracksCount, bitDepth, sampleRate)
		if err != nil {
			c.logger.Warn("skipping malformed album record", logging.Error(err))
			continue
		}
		editions = append(editions, edition)
	}
	c.logger.Debug("fetched artist albums",
		logging.Int("artist_id", int(artistID)), logging.Int("editions", len(editions)))
	return editions, nil
}

// AlbumTracks fetches the ordered track list for one album.
func (c *Client) AlbumTracks(ctx context.Context, albumID string) ([]catalog.TrackRef, error) {
	params := url.Values{}
	params.Set("album_id", albumID)

	var payload struct {
		Tracks struct {
			Items []struct {
				Title string `json:"title"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/album/get", params, &payload); err != nil {
		return nil, err
	}

	tracks := make([]catalog.TrackRef, 0, len(payload.Tracks.Items))
	for _, item := range payload.Tracks.Items {
		if item.Title == "" {
			continue
		}
		tracks = append(tracks, catalog.NewTrackRef(len(tracks)+1, item.Title))
	}
	return tracks, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	signature := fmt.Sprintf("%x", md5.Sum([]byte(timestamp+c.secret)))
	req.Header.Set("X-App-Id", c.appID)
	req.Header.Set("X-Request-Ts", timestamp)
	req.Header.Set("X-Request-Sign", signature)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "remote request", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return services.Wrap(services.ErrNotFound, "", "remote request", path, nil)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return services.Wrap(services.ErrTransient, "", "remote request",
			fmt.Sprintf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// parseReleaseYear extracts the year from a YYYY-MM-DD release date.
func parseReleaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
