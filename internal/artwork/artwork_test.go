package artwork

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryp/album-table/internal/http"
	"github.com/tryp/album-table/internal/model"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(http.NewClient(time.Second, ""), log.New(&bytes.Buffer{}), Options{
		Attempts: 3,
		Delay:    time.Millisecond,
		Size:     100,
		Columns:  4,
	})
}

func TestThumbnail(t *testing.T) {
	thumb, err := Thumbnail(testPNG(t, 8, 8), 4, 0)
	require.NoError(t, err)

	lines := strings.Split(ansi.Strip(thumb), "\n")
	require.Len(t, lines, 2, "square art is half as many lines as columns")
	for _, line := range lines {
		assert.Equal(t, strings.Repeat(halfBlock, 4), line)
	}
}

func TestThumbnail_ExplicitRows(t *testing.T) {
	thumb, err := Thumbnail(testPNG(t, 8, 8), 6, 5)
	require.NoError(t, err)
	assert.Len(t, strings.Split(thumb, "\n"), 5)
}

func TestThumbnail_Errors(t *testing.T) {
	_, err := Thumbnail(testPNG(t, 2, 2), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Thumbnail([]byte("not an image"), 4, 0)
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	img, err := Decode(testPNG(t, 10, 10))
	require.NoError(t, err)

	scaled := Scale(img, 3, 6)
	assert.Equal(t, 3, scaled.Bounds().Dx())
	assert.Equal(t, 6, scaled.Bounds().Dy())
}

func TestService_FetchRetriesTemporaryErrors(t *testing.T) {
	art := testPNG(t, 4, 4)
	var hits atomic.Int32
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(stdhttp.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write(art)
	}))
	defer srv.Close()

	data, err := newTestService(t).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, art, data)
	assert.Equal(t, int32(3), hits.Load())
}

func TestService_FetchDoesNotRetryNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		hits.Add(1)
		stdhttp.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestService(t).Fetch(context.Background(), srv.URL)
	var se *http.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, stdhttp.StatusNotFound, se.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
}

func TestService_ThumbnailIsCached(t *testing.T) {
	art := testPNG(t, 4, 4)
	var hits atomic.Int32
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		hits.Add(1)
		_, _ = w.Write(art)
	}))
	defer srv.Close()

	svc := newTestService(t)
	album := &model.Album{ID: 1, Name: "Thriller", ArtworkURL: srv.URL + "/100x100bb.png"}

	first, err := svc.Thumbnail(context.Background(), album)
	require.NoError(t, err)
	second, err := svc.Thumbnail(context.Background(), album)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	cached, ok := svc.Cached(album)
	assert.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestService_ThumbnailNoArtwork(t *testing.T) {
	_, err := newTestService(t).Thumbnail(context.Background(), &model.Album{ID: 9})
	assert.ErrorIs(t, err, ErrNoArtwork)
}

func TestPrefetcher_Run(t *testing.T) {
	art := testPNG(t, 4, 4)
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			stdhttp.NotFound(w, r)
			return
		}
		_, _ = w.Write(art)
	}))
	defer srv.Close()

	albums := []*model.Album{
		{ID: 1, Name: "Thriller", ArtworkURL: srv.URL + "/a/100x100bb.png"},
		{ID: 2, Name: "Bad", ArtworkURL: srv.URL + "/b/100x100bb.png"},
		{ID: 3, Name: "Dangerous", ArtworkURL: srv.URL + "/missing/100x100bb.png"},
		{ID: 4, Name: "Invincible"},
	}

	p := NewPrefetcher(newTestService(t), 2)

	var mu sync.Mutex
	results := map[int64]Result{}
	err := p.Run(context.Background(), albums, func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		results[r.Album.ID] = r
	})
	require.NoError(t, err)

	require.Len(t, results, 3, "albums without artwork are skipped")
	assert.NoError(t, results[1].Err)
	assert.NotEmpty(t, results[1].Thumbnail)
	assert.Error(t, results[3].Err, "a failure is reported, not fatal")

	done, failed, total := p.Progress()
	assert.Equal(t, 3, done)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 3, total)
	assert.InDelta(t, 1.0, p.Percent(), 0.001)
}

func TestPrefetcher_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPrefetcher(newTestService(t), 1)
	err := p.Run(ctx, []*model.Album{{ID: 1, ArtworkURL: "http://127.0.0.1:1/x.png"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrefetcher_EmptyPercent(t *testing.T) {
	p := NewPrefetcher(newTestService(t), 1)
	require.NoError(t, p.Run(context.Background(), nil, nil))
	assert.InDelta(t, 1.0, p.Percent(), 0.001)
}
