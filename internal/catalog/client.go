// Skillify - Skill Tracking and Learning Resource Platform
// Copyright 2026 Skillify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/skillify-dev/skillify

// Package catalog talks to the external video catalog API and normalizes
// its responses into the Resource domain model. The exported stack is
// layered: Client (HTTP) -> BreakerClient (circuit breaker) -> CachedClient
// (response cache); construct via NewStack.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/skillify-dev/skillify/internal/config"
	"github.com/skillify-dev/skillify/internal/logging"
	"github.com/skillify-dev/skillify/internal/metrics"
	"github.com/skillify-dev/skillify/internal/models"
)

// Sentinel errors. Upstream failure modes are deliberately not
// differentiated; callers only need "the catalog is down" or "no such
// video".
var (
	ErrCatalogUnavailable = errors.New("video catalog unavailable")
	ErrVideoNotFound      = errors.New("video not found")
)

// maxErrorBodySize bounds how much of an upstream error body is read.
const maxErrorBodySize = 64 * 1024

// API is the catalog surface consumed by the rest of the application.
type API interface {
	// Search returns normalized resources for a query.
	Search(ctx context.Context, opts SearchOptions) (*SearchResult, error)

	// Video returns the full metadata for a single video, or
	// ErrVideoNotFound.
	Video(ctx context.Context, id string) (*models.Resource, error)
}

// SearchOptions parameterizes a catalog search.
type SearchOptions struct {
	Query      string
	MaxResults int
	PageToken  string

	// Duration is the upstream duration bucket (short, medium, long).
	// Empty means no duration filter.
	Duration string
}

// SearchResult is a page of normalized search results.
type SearchResult struct {
	Resources     []models.Resource `json:"resources"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	TotalResults  int               `json:"totalResults"`
}

// Client is the plain HTTP catalog client. It performs a search call
// followed by a batch statistics call, joining the two keyed by video ID.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxResults int
}

// NewClient builds a catalog client from configuration. The rate limiter
// bounds upstream request rate regardless of how many user requests fan out
// into catalog searches.
func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		maxResults: cfg.MaxResults,
	}
}

// searchResponse is the upstream search payload.
type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	PageInfo      struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

// videosResponse is the upstream videos/statistics payload.
type videosResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string  `json:"id"`
	Snippet        snippet `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount string `json:"viewCount"`
		LikeCount string `json:"likeCount"`
	} `json:"statistics"`
}

type snippet struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelTitle string   `json:"channelTitle"`
	PublishedAt  string   `json:"publishedAt"`
	Tags         []string `json:"tags"`
	Thumbnails   struct {
		Medium struct {
			URL string `json:"url"`
		} `json:"medium"`
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

// Search runs the two-call search pipeline. Videos whose statistics are
// missing from the batch response degrade to zero counts rather than being
// dropped or mismatched.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (result *SearchResult, err error) {
	start := time.Now()
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
		recordCatalog("search", err)
	}()

	if opts.MaxResults <= 0 || opts.MaxResults > 50 {
		opts.MaxResults = c.maxResults
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", opts.Query)
	params.Set("maxResults", strconv.Itoa(opts.MaxResults))
	if opts.Duration != "" {
		params.Set("videoDuration", opts.Duration)
	}
	if opts.PageToken != "" {
		params.Set("pageToken", opts.PageToken)
	}

	var searchResp searchResponse
	if err = c.doGet(ctx, "/search", params, &searchResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	// Batch statistics call, joined by video ID. The upstream does not
	// guarantee response order, so a positional merge would corrupt counts.
	statsByID := make(map[string]videoItem, len(ids))
	if len(ids) > 0 {
		statsParams := url.Values{}
		statsParams.Set("part", "snippet,statistics,contentDetails")
		statsParams.Set("id", strings.Join(ids, ","))

		var videosResp videosResponse
		if err = c.doGet(ctx, "/videos", statsParams, &videosResp); err != nil {
			return nil, err
		}
		for _, v := range videosResp.Items {
			statsByID[v.ID] = v
		}
	}

	resources := make([]models.Resource, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		id := item.ID.VideoID
		if id == "" {
			continue
		}
		stats, ok := statsByID[id]
		if !ok {
			stats = videoItem{ID: id, Snippet: item.Snippet}
		}
		resources = append(resources, normalizeVideo(id, item.Snippet, stats))
	}

	return &SearchResult{
		Resources:     resources,
		NextPageToken: searchResp.NextPageToken,
		TotalResults:  searchResp.PageInfo.TotalResults,
	}, nil
}

// Video fetches full metadata for one video.
func (c *Client) Video(ctx context.Context, id string) (res *models.Resource, err error) {
	start := time.Now()
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues("video").Observe(time.Since(start).Seconds())
		recordCatalog("video", err)
	}()

	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", id)

	var resp videosResponse
	if err = c.doGet(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		err = ErrVideoNotFound
		return nil, err
	}

	item := resp.Items[0]
	resource := normalizeVideo(item.ID, item.Snippet, item)
	return &resource, nil
}

// doGet performs a rate-limited GET against the catalog and decodes JSON.
// Every failure mode other than a well-formed response collapses into
// ErrCatalogUnavailable, with detail logged server-side.
func (c *Client) doGet(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %w", ErrCatalogUnavailable, err)
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Catalog request failed")
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		logging.Ctx(ctx).Warn().Int("status", resp.StatusCode).Str("path", path).
			Str("body", body).Msg("Catalog returned non-OK status")
		return fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrCatalogUnavailable, err)
	}
	return nil
}

// readBodyForError reads a bounded amount of the response body for log
// context on upstream errors.
func readBodyForError(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return ""
	}
	return string(data)
}

// normalizeVideo maps an upstream item onto the Resource model. Search
// snippets lack tags; the stats item's snippet supplies them when present.
func normalizeVideo(id string, sn snippet, stats videoItem) models.Resource {
	thumb := sn.Thumbnails.Medium.URL
	if thumb == "" {
		thumb = sn.Thumbnails.Default.URL
	}

	tags := stats.Snippet.Tags
	if len(tags) == 0 {
		tags = sn.Tags
	}

	publishedAt, _ := time.Parse(time.RFC3339, sn.PublishedAt)

	return models.Resource{
		ID:           id,
		Title:        sn.Title,
		Description:  sn.Description,
		ThumbnailURL: thumb,
		Link:         "https://www.youtube.com/watch?v=" + id,
		Platform:     "YouTube",
		Type:         "video",
		Level:        Classify(sn.Title, sn.Description, tags),
		Views:        parseCount(stats.Statistics.ViewCount),
		Likes:        parseCount(stats.Statistics.LikeCount),
		Duration:     stats.ContentDetails.Duration,
		PublishedAt:  publishedAt,
	}
}

// parseCount converts upstream string numerics. Missing or malformed
// counts are zero.
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// recordCatalog increments the catalog request counter.
func recordCatalog(operation string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrVideoNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	metrics.CatalogRequestsTotal.WithLabelValues(operation, outcome).Inc()
}
