package model

import (
	"testing"
)

func TestAlbum_LargeArtworkURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		size int
		want string
	}{
		{
			name: "rewrites size segment",
			url:  "https://is1-ssl.mzstatic.com/image/thumb/Music/v4/ab/100x100bb.jpg",
			size: 600,
			want: "https://is1-ssl.mzstatic.com/image/thumb/Music/v4/ab/600x600bb.jpg",
		},
		{
			name: "no size segment",
			url:  "https://example.com/cover.jpg",
			size: 600,
			want: "https://example.com/cover.jpg",
		},
		{
			name: "no artwork",
			url:  "",
			size: 600,
			want: "",
		},
		{
			name: "non-positive size",
			url:  "https://example.com/100x100bb.jpg",
			size: 0,
			want: "https://example.com/100x100bb.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := &Album{ArtworkURL: tt.url}
			if got := album.LargeArtworkURL(tt.size); got != tt.want {
				t.Errorf("LargeArtworkURL(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}

func TestAlbum_HasArtwork(t *testing.T) {
	if (&Album{}).HasArtwork() {
		t.Error("HasArtwork() should return false when ArtworkURL is empty")
	}
	if !(&Album{ArtworkURL: "https://example.com/a.jpg"}).HasArtwork() {
		t.Error("HasArtwork() should return true when ArtworkURL is set")
	}
}

func TestAlbum_String(t *testing.T) {
	album := &Album{Artist: "Michael Jackson", Name: "Thriller"}
	if got := album.String(); got != "Michael Jackson - Thriller" {
		t.Errorf("String() = %q", got)
	}
}

func TestAlbum_PriceString(t *testing.T) {
	tests := []struct {
		album Album
		want  string
	}{
		{Album{Price: 9.99, Currency: "USD"}, "9.99 USD"},
		{Album{Price: 9.99}, "9.99"},
		{Album{Price: 0, Currency: "USD"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.album.PriceString(); got != tt.want {
				t.Errorf("PriceString() = %q, want %q", got, tt.want)
			}
		})
	}
}
