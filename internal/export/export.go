package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	ioutils "github.com/tryp/album-table/internal/io"
	"github.com/tryp/album-table/internal/model"
)

// Format represents supported export file formats.
//
// Each format serves a different consumer:
//   - CSV: spreadsheets
//   - JSON: scripts and other tools
//   - M3U: players that open store links as entries
//   - PLS: INI-style playlist, used by Winamp
type Format int

const (
	// FormatCSV writes one header line and one line per album.
	FormatCSV Format = iota

	// FormatJSON writes an indented array of album objects.
	FormatJSON

	// FormatM3U writes store links, optionally with #EXTINF titles.
	FormatM3U

	// FormatPLS writes an INI-style playlist of store links.
	FormatPLS
)

// dateLayout is the release date layout used in CSV and JSON exports.
const dateLayout = "2006-01-02"

// ParseFormat parses "csv", "json", "m3u" or "pls".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	default:
		return 0, fmt.Errorf("unknown export format %q", s)
	}
}

// Ext returns the file extension of f, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatM3U:
		return "m3u"
	case FormatPLS:
		return "pls"
	default:
		return "csv"
	}
}

func (f Format) String() string { return f.Ext() }

// Exporter writes album lists in one format.
//
// Example:
//
//	exporter := NewExporter(FormatM3U, true)
//	path, err := exporter.Save(settings.Export.Directory, "Michael Jackson page 1", albums)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Michael Jackson - Thriller
//	// https://music.apple.com/us/album/thriller/269572838
type Exporter struct {
	format   Format
	extended bool // For M3U: include EXTINF lines with titles
}

// NewExporter creates a new Exporter.
func NewExporter(format Format, extended bool) *Exporter {
	return &Exporter{
		format:   format,
		extended: extended,
	}
}

// Format returns the exporter's format.
func (e *Exporter) Format() Format { return e.format }

// Render returns the export file content for albums.
func (e *Exporter) Render(albums []*model.Album) ([]byte, error) {
	switch e.format {
	case FormatJSON:
		return renderJSON(albums)
	case FormatM3U:
		return []byte(e.renderM3U(albums)), nil
	case FormatPLS:
		return []byte(renderPLS(albums)), nil
	default:
		return renderCSV(albums)
	}
}

// FileName returns the sanitized file name for base in the exporter's format.
func (e *Exporter) FileName(base string) string {
	return ioutils.SanitizeFileName(base) + "." + e.format.Ext()
}

// Save renders albums into dir/<base>.<ext> and returns the written path.
func (e *Exporter) Save(dir, base string, albums []*model.Album) (string, error) {
	data, err := e.Render(albums)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, e.FileName(base))
	if err := ioutils.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func formatDate(a *model.Album) string {
	if a.ReleaseDate.IsZero() {
		return ""
	}
	return a.ReleaseDate.Format(dateLayout)
}

// renderCSV generates a CSV table:
//
//	Name,Artist,Genre,Release Date,Track Count,Price,Currency,URL
//	Thriller,Michael Jackson,Pop,1982-11-30,9,9.99,USD,https://...
func renderCSV(albums []*model.Album) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"Name", "Artist", "Genre", "Release Date", "Track Count", "Price", "Currency", "URL"}}
	for _, a := range albums {
		price := ""
		if a.Price > 0 {
			price = strconv.FormatFloat(a.Price, 'f', 2, 64)
		}
		records = append(records, []string{
			a.Name,
			a.Artist,
			a.Genre,
			formatDate(a),
			strconv.Itoa(a.TrackCount),
			price,
			a.Currency,
			a.ViewURL,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

type jsonAlbum struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Artist      string  `json:"artist"`
	Genre       string  `json:"genre,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
	TrackCount  int     `json:"track_count"`
	Price       float64 `json:"price,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Explicit    bool    `json:"explicit,omitempty"`
	ArtworkURL  string  `json:"artwork_url,omitempty"`
	URL         string  `json:"url"`
}

func renderJSON(albums []*model.Album) ([]byte, error) {
	out := make([]jsonAlbum, 0, len(albums))
	for _, a := range albums {
		out = append(out, jsonAlbum{
			ID:          a.ID,
			Name:        a.Name,
			Artist:      a.Artist,
			Genre:       a.Genre,
			ReleaseDate: formatDate(a),
			TrackCount:  a.TrackCount,
			Price:       a.Price,
			Currency:    a.Currency,
			Explicit:    a.Explicit,
			ArtworkURL:  a.ArtworkURL,
			URL:         a.ViewURL,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// renderM3U generates an M3U list of store links.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Name
//	https://music.apple.com/...
func (e *Exporter) renderM3U(albums []*model.Album) string {
	var sb strings.Builder

	if e.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, a := range albums {
		if a.ViewURL == "" {
			continue
		}
		if e.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", a)
		}
		sb.WriteString(a.ViewURL + "\n")
	}

	return sb.String()
}

// renderPLS generates a PLS playlist:
//
//	[playlist]
//	File1=https://music.apple.com/...
//	Title1=Artist - Name
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func renderPLS(albums []*model.Album) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	n := 0
	for _, a := range albums {
		if a.ViewURL == "" {
			continue
		}
		n++
		fmt.Fprintf(&sb, "File%d=%s\n", n, a.ViewURL)
		fmt.Fprintf(&sb, "Title%d=%s\n", n, a)
		fmt.Fprintf(&sb, "Length%d=-1\n", n)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", n)
	sb.WriteString("Version=2\n")

	return sb.String()
}
