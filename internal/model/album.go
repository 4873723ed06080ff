package model

import (
	"fmt"
	"strings"
	"time"
)

// artworkSizeToken is the size segment iTunes embeds in artwork URLs.
const artworkSizeToken = "100x100bb"

// Album represents an album returned by the iTunes Search API.
//
// Album contains everything the table needs to render a row:
//   - Artist and Name for display and filtering
//   - Genre, ReleaseDate and TrackCount for sortable columns
//   - ArtworkURL for the detail pane thumbnail
//   - ViewURL for the "Listen" action link
//
// Example:
//
//	album := &Album{
//	    Artist:      "Michael Jackson",
//	    Name:        "Thriller",
//	    ReleaseDate: time.Date(1982, 11, 30, 0, 0, 0, 0, time.UTC),
//	    TrackCount:  9,
//	}
//	fmt.Println(album) // Michael Jackson - Thriller
type Album struct {
	// ID is the iTunes collection ID.
	ID int64

	// Artist is the album artist name.
	Artist string

	// Name is the collection (album) name.
	Name string

	// Genre is the primary genre name, e.g. "Pop".
	Genre string

	// ReleaseDate is when the album was released.
	// The zero value means the API did not report a date.
	ReleaseDate time.Time

	// TrackCount is the number of tracks on the album.
	TrackCount int

	// ArtworkURL is the 100x100 artwork URL.
	// Empty string means no artwork is available.
	ArtworkURL string

	// ViewURL is the store page for the album.
	ViewURL string

	// Price is the collection price in Currency.
	Price float64

	// Currency is an ISO 4217 code, e.g. "USD".
	Currency string

	// Country is the storefront country code, e.g. "USA".
	Country string

	// Explicit is true when the collection is marked explicit.
	Explicit bool
}

// HasArtwork returns true if the album has cover art available for download.
func (a *Album) HasArtwork() bool {
	return a.ArtworkURL != ""
}

// String returns "Artist - Name".
func (a *Album) String() string {
	return a.Artist + " - " + a.Name
}

// LargeArtworkURL returns the artwork URL rewritten to a square of the given size.
//
// iTunes serves any square size by replacing the "100x100bb" segment of the
// URL. If the URL has no such segment it is returned unchanged.
//
// Example:
//
//	album.LargeArtworkURL(600)
//	// https://is1-ssl.mzstatic.com/.../600x600bb.jpg
func (a *Album) LargeArtworkURL(size int) string {
	if !a.HasArtwork() || size <= 0 {
		return a.ArtworkURL
	}
	return strings.Replace(a.ArtworkURL, artworkSizeToken, fmt.Sprintf("%dx%dbb", size, size), 1)
}

// PriceString formats the price with its currency, or "" when unpriced.
func (a *Album) PriceString() string {
	if a.Price <= 0 {
		return ""
	}
	if a.Currency == "" {
		return fmt.Sprintf("%.2f", a.Price)
	}
	return fmt.Sprintf("%.2f %s", a.Price, a.Currency)
}
