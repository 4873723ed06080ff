package dto

import (
	"encoding/json"
	"time"

	"github.com/tryp/album-table/internal/model"
)

// WrapperCollection is the wrapperType of album records.
const WrapperCollection = "collection"

// explicitness value iTunes uses for explicit collections.
const explicitValue = "explicit"

// ITunesTime handles the date formats returned by the Search API.
type ITunesTime struct {
	time.Time
}

// UnmarshalJSON parses "2001-10-30T07:00:00Z" and a few looser variants.
// A date in any other form leaves the zero time so one bad record does not
// fail the whole response.
func (it *ITunesTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		it.Time = time.Time{}
		return nil
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			it.Time = t
			return nil
		}
	}

	it.Time = time.Time{}
	return nil
}

// JSONResponse is the envelope returned by the Search API.
type JSONResponse struct {
	ResultCount int         `json:"resultCount"`
	Results     []JSONAlbum `json:"results"`
}

// JSONAlbum is one album record from the Search API.
type JSONAlbum struct {
	WrapperType            string      `json:"wrapperType"`
	CollectionType         string      `json:"collectionType"`
	ArtistID               int64       `json:"artistId"`
	CollectionID           int64       `json:"collectionId"`
	ArtistName             string      `json:"artistName"`
	CollectionName         string      `json:"collectionName"`
	CollectionCensoredName string      `json:"collectionCensoredName"`
	ArtistViewURL          string      `json:"artistViewUrl"`
	CollectionViewURL      string      `json:"collectionViewUrl"`
	ArtworkURL60           string      `json:"artworkUrl60"`
	ArtworkURL100          string      `json:"artworkUrl100"`
	CollectionPrice        float64     `json:"collectionPrice"`
	CollectionExplicitness string      `json:"collectionExplicitness"`
	TrackCount             int         `json:"trackCount"`
	Copyright              string      `json:"copyright"`
	Country                string      `json:"country"`
	Currency               string      `json:"currency"`
	ReleaseDate            *ITunesTime `json:"releaseDate"`
	PrimaryGenreName       string      `json:"primaryGenreName"`
}

// IsCollection reports whether the record describes an album.
func (ja *JSONAlbum) IsCollection() bool {
	return ja.WrapperType == WrapperCollection
}

// ToAlbum converts JSONAlbum to a model.Album.
func (ja *JSONAlbum) ToAlbum() *model.Album {
	var releaseDate time.Time
	if ja.ReleaseDate != nil {
		releaseDate = ja.ReleaseDate.Time
	}

	name := ja.CollectionName
	if name == "" {
		name = ja.CollectionCensoredName
	}

	artwork := ja.ArtworkURL100
	if artwork == "" {
		artwork = ja.ArtworkURL60
	}

	return &model.Album{
		ID:          ja.CollectionID,
		Artist:      ja.ArtistName,
		Name:        name,
		Genre:       ja.PrimaryGenreName,
		ReleaseDate: releaseDate,
		TrackCount:  ja.TrackCount,
		ArtworkURL:  artwork,
		ViewURL:     ja.CollectionViewURL,
		Price:       ja.CollectionPrice,
		Currency:    ja.Currency,
		Country:     ja.Country,
		Explicit:    ja.CollectionExplicitness == explicitValue,
	}
}

// ToAlbums converts every album record of the response, skipping records
// that are not collections.
func (jr *JSONResponse) ToAlbums() []*model.Album {
	albums := make([]*model.Album, 0, len(jr.Results))
	for i := range jr.Results {
		if !jr.Results[i].IsCollection() {
			continue
		}
		albums = append(albums, jr.Results[i].ToAlbum())
	}
	return albums
}
