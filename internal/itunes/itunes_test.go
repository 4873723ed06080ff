package itunes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tryp/album-table/internal/cache"
	"github.com/tryp/album-table/internal/http"
	"github.com/tryp/album-table/internal/itunes/dto"
)

const sampleResponse = `{
  "resultCount": 3,
  "results": [
    {
      "wrapperType": "collection",
      "collectionId": 269572838,
      "artistName": "Michael Jackson",
      "collectionName": "Thriller",
      "collectionViewUrl": "https://music.apple.com/us/album/thriller/269572838",
      "artworkUrl100": "https://is1-ssl.mzstatic.com/image/thumb/Music/100x100bb.jpg",
      "collectionPrice": 9.99,
      "collectionExplicitness": "notExplicit",
      "trackCount": 9,
      "country": "USA",
      "currency": "USD",
      "releaseDate": "1982-11-30T08:00:00Z",
      "primaryGenreName": "Pop"
    },
    {
      "wrapperType": "collection",
      "collectionId": 159292399,
      "artistName": "Michael Jackson",
      "collectionName": "Bad",
      "trackCount": 11,
      "releaseDate": "1987-08-31T07:00:00Z",
      "primaryGenreName": "Pop"
    },
    {
      "wrapperType": "artist",
      "artistName": "Michael Jackson"
    }
  ]
}`

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		query Query
		want  string
	}{
		{
			name:  "default query",
			base:  DefaultBaseURL,
			query: Query{Term: "michael jackson"},
			want:  "https://itunes.apple.com/search?entity=album&term=michael+jackson",
		},
		{
			name:  "limit and country",
			base:  DefaultBaseURL,
			query: Query{Term: "abba", Limit: 25, Country: "se"},
			want:  "https://itunes.apple.com/search?country=SE&entity=album&limit=25&term=abba",
		},
		{
			name:  "base with query string",
			base:  "http://localhost/search?x=1",
			query: Query{Term: "abba"},
			want:  "http://localhost/search?x=1&entity=album&term=abba",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchURL(tt.base, tt.query))
		})
	}
}

func TestQuery_Validate(t *testing.T) {
	q := Query{Term: "  abba  "}
	require.NoError(t, q.Validate())
	assert.Equal(t, "abba", q.Term)

	empty := Query{Term: "   "}
	assert.ErrorIs(t, empty.Validate(), ErrEmptyTerm)

	tooMany := Query{Term: "abba", Limit: MaxLimit + 1}
	assert.Error(t, tooMany.Validate())
}

func TestClient_Search(t *testing.T) {
	var gotTerm, gotEntity string
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotEntity = r.URL.Query().Get("entity")
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger(), WithBaseURL(srv.URL))

	albums, err := client.Search(context.Background(), Query{Term: "michael jackson"})
	require.NoError(t, err)

	assert.Equal(t, "michael jackson", gotTerm)
	assert.Equal(t, "album", gotEntity)
	require.Len(t, albums, 2, "artist records are skipped")

	thriller := albums[0]
	assert.Equal(t, int64(269572838), thriller.ID)
	assert.Equal(t, "Thriller", thriller.Name)
	assert.Equal(t, "Pop", thriller.Genre)
	assert.Equal(t, 9, thriller.TrackCount)
	assert.Equal(t, 1982, thriller.ReleaseDate.Year())
	assert.Equal(t, "9.99 USD", thriller.PriceString())
	assert.False(t, thriller.Explicit)
	assert.True(t, thriller.HasArtwork())

	assert.False(t, albums[1].HasArtwork())
}

func TestClient_Search_EmptyTerm(t *testing.T) {
	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger())

	_, err := client.Search(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestClient_Search_ServerError(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger(), WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), Query{Term: "abba"})
	require.Error(t, err)

	var se *http.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, stdhttp.StatusServiceUnavailable, se.StatusCode)
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, `{"results": [`)
	}))
	defer srv.Close()

	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger(), WithBaseURL(srv.URL))

	_, err := client.Search(context.Background(), Query{Term: "abba"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode search response")
}

func TestClient_Search_Cache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	store, err := cache.NewFileStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)

	client := NewClient(http.NewClient(time.Second, ""), store, testLogger(), WithBaseURL(srv.URL))

	for range 3 {
		albums, err := client.Search(context.Background(), Query{Term: "michael jackson"})
		require.NoError(t, err)
		assert.Len(t, albums, 2)
	}
	assert.Equal(t, int32(1), hits.Load(), "later searches are served from cache")

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClient_Search_CorruptCacheEntry(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	store, err := cache.NewFileStore(t.TempDir(), true, time.Hour)
	require.NoError(t, err)

	q := Query{Term: "abba"}
	key := cache.Key(SearchURL(srv.URL, q))
	require.NoError(t, store.Set(key, json.RawMessage(`"not an envelope"`)))

	client := NewClient(http.NewClient(time.Second, ""), store, testLogger(), WithBaseURL(srv.URL))
	albums, err := client.Search(context.Background(), q)
	require.NoError(t, err)
	assert.Len(t, albums, 2)
}

func TestClient_Search_BadReleaseDate(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, `{"resultCount": 2, "results": [
			{"wrapperType": "collection", "collectionId": 1, "collectionName": "Thriller", "releaseDate": "1982-11-30T08:00:00Z"},
			{"wrapperType": "collection", "collectionId": 2, "collectionName": "Bad", "releaseDate": "1987-08"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger(), WithBaseURL(srv.URL))

	albums, err := client.Search(context.Background(), Query{Term: "michael jackson"})
	require.NoError(t, err)
	require.Len(t, albums, 2)
	assert.Equal(t, 1982, albums[0].ReleaseDate.Year())
	assert.Equal(t, "Bad", albums[1].Name)
	assert.True(t, albums[1].ReleaseDate.IsZero())
}

func TestClient_Search_SkipsRecordsWithoutWrapperType(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		_, _ = io.WriteString(w, `{"resultCount": 3, "results": [
			{"wrapperType": "collection", "collectionId": 1, "collectionName": "Thriller"},
			{"collectionId": 2, "collectionName": "Unknown"},
			{"wrapperType": "track", "collectionId": 1, "trackName": "Beat It"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(http.NewClient(time.Second, ""), nil, testLogger(), WithBaseURL(srv.URL))

	albums, err := client.Search(context.Background(), Query{Term: "michael jackson"})
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Thriller", albums[0].Name)
}

func TestITunesTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
		year    int
	}{
		{input: `"2001-10-30T07:00:00Z"`, year: 2001},
		{input: `"2001-10-30"`, year: 2001},
		{input: `""`, year: 1},
		{input: `"30 Oct 2001"`, year: 1},
		{input: `"1987-08"`, year: 1},
		{input: `20011030`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var it dto.ITunesTime
			err := it.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.year, it.Year())
		})
	}
}
