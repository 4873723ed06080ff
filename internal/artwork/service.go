package artwork

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"

	"github.com/tryp/album-table/internal/http"
	"github.com/tryp/album-table/internal/model"
)

// ErrNoArtwork is returned for albums without an artwork URL.
var ErrNoArtwork = errors.New("album has no artwork")

// Options configures a Service.
type Options struct {
	// Attempts is the number of download attempts per image.
	Attempts int
	// Delay is the first retry delay; later retries back off exponentially.
	Delay time.Duration
	// Size is the requested square artwork size in pixels.
	Size int
	// Columns is the thumbnail width in terminal cells.
	Columns int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Attempts: 3,
		Delay:    200 * time.Millisecond,
		Size:     100,
		Columns:  20,
	}
}

// Service downloads album artwork and renders thumbnails for the detail
// pane. Rendered thumbnails are kept in memory by album ID.
//
// Service is safe for concurrent use.
type Service struct {
	client *http.Client
	logger *log.Logger
	opts   Options

	mu     sync.RWMutex
	thumbs map[int64]string
}

// NewService creates an artwork service.
func NewService(client *http.Client, logger *log.Logger, opts Options) *Service {
	if logger == nil {
		logger = log.Default()
	}
	def := DefaultOptions()
	if opts.Attempts < 1 {
		opts.Attempts = def.Attempts
	}
	if opts.Columns < 1 {
		opts.Columns = def.Columns
	}
	return &Service{
		client: client,
		logger: logger.WithPrefix("artwork"),
		opts:   opts,
		thumbs: make(map[int64]string),
	}
}

// Fetch downloads url, retrying transport errors, 429s and 5xx responses
// with exponential backoff.
func (s *Service) Fetch(ctx context.Context, url string) ([]byte, error) {
	return retry.DoWithData(
		func() ([]byte, error) {
			return s.client.DownloadBytes(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(uint(s.opts.Attempts)),
		retry.Delay(s.opts.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying artwork download", "url", url, "attempt", n+1, "err", err)
		}),
	)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *http.StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

// Cached returns the thumbnail rendered earlier for a, if any.
func (s *Service) Cached(a *model.Album) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	thumb, ok := s.thumbs[a.ID]
	return thumb, ok
}

// Thumbnail returns the half-block thumbnail of a's artwork, downloading
// and rendering it on first use.
func (s *Service) Thumbnail(ctx context.Context, a *model.Album) (string, error) {
	if thumb, ok := s.Cached(a); ok {
		return thumb, nil
	}
	if !a.HasArtwork() {
		return "", ErrNoArtwork
	}

	url := a.LargeArtworkURL(s.opts.Size)
	data, err := s.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("download artwork for %s: %w", a, err)
	}

	thumb, err := Thumbnail(data, s.opts.Columns, 0)
	if err != nil {
		return "", fmt.Errorf("render artwork for %s: %w", a, err)
	}

	s.mu.Lock()
	s.thumbs[a.ID] = thumb
	s.mu.Unlock()

	return thumb, nil
}
