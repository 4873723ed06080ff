package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/tryp/album-table/internal/cache"
	"github.com/tryp/album-table/internal/http"
	"github.com/tryp/album-table/internal/itunes/dto"
	"github.com/tryp/album-table/internal/model"
)

const (
	// DefaultBaseURL is the public iTunes Search API endpoint.
	DefaultBaseURL = "https://itunes.apple.com/search"

	// DefaultTerm is the artist searched when none is given.
	DefaultTerm = "michael jackson"

	// MaxLimit is the largest result count the API accepts.
	MaxLimit = 200

	entityAlbum = "album"
)

// ErrEmptyTerm is returned when a search is attempted without a term.
var ErrEmptyTerm = errors.New("search term cannot be empty")

// Query describes one album search.
type Query struct {
	// Term is the artist (or free text) to search for.
	Term string

	// Limit caps the number of results (0 = API default of 50).
	Limit int

	// Country is a two-letter storefront code (empty = API default "US").
	Country string
}

// Validate checks the query and normalizes the term.
func (q *Query) Validate() error {
	q.Term = strings.TrimSpace(q.Term)
	if q.Term == "" {
		return ErrEmptyTerm
	}
	if q.Limit < 0 || q.Limit > MaxLimit {
		return fmt.Errorf("limit must be between 0 and %d, got %d", MaxLimit, q.Limit)
	}
	return nil
}

// SearchURL builds the request URL for q against base.
//
// Example:
//
//	SearchURL(DefaultBaseURL, Query{Term: "michael jackson"})
//	// https://itunes.apple.com/search?entity=album&term=michael+jackson
func SearchURL(base string, q Query) string {
	values := url.Values{}
	values.Set("term", q.Term)
	values.Set("entity", entityAlbum)
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Country != "" {
		values.Set("country", strings.ToUpper(q.Country))
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + values.Encode()
}

// Client searches the iTunes catalog for albums.
//
// Example usage:
//
//	client := itunes.NewClient(httpClient, store, logger)
//
//	albums, err := client.Search(ctx, itunes.Query{Term: "michael jackson"})
//	if err != nil {
//	    return fmt.Errorf("failed to fetch albums: %w", err)
//	}
type Client struct {
	http    *http.Client
	store   *cache.FileStore
	logger  *log.Logger
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another endpoint (used by tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// NewClient creates a search client. store may be nil to disable caching.
func NewClient(httpClient *http.Client, store *cache.FileStore, logger *log.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{
		http:    httpClient,
		store:   store,
		logger:  logger.WithPrefix("itunes"),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search fetches the albums matching q.
//
// Cached responses are served while fresh. A stale, missing or unreadable
// cache entry falls through to the network.
func (c *Client) Search(ctx context.Context, q Query) ([]*model.Album, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	reqURL := SearchURL(c.baseURL, q)
	key := cache.Key(reqURL)

	if resp, ok := c.cached(key); ok {
		c.logger.Debug("cache hit", "url", reqURL, "results", resp.ResultCount)
		return resp.ToAlbums(), nil
	}

	c.logger.Debug("fetching albums", "url", reqURL)
	body, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Term, err)
	}

	var resp dto.JSONResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if c.store != nil && c.store.IsEnabled() {
		if err := c.store.Set(key, body); err != nil {
			c.logger.Warn("could not cache response", "err", err)
		}
	}

	albums := resp.ToAlbums()
	c.logger.Info("fetched albums", "term", q.Term, "count", len(albums))
	return albums, nil
}

func (c *Client) cached(key string) (*dto.JSONResponse, bool) {
	if c.store == nil || !c.store.IsEnabled() {
		return nil, false
	}

	entry, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrExpired) {
			c.logger.Warn("cache read failed", "err", err)
		}
		return nil, false
	}

	var resp dto.JSONResponse
	if err := json.Unmarshal(entry.Data, &resp); err != nil {
		c.logger.Warn("discarding corrupt cache entry", "err", err)
		_ = c.store.Delete(key)
		return nil, false
	}
	return &resp, true
}
