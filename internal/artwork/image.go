package artwork

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// ErrInvalidSize is returned for non-positive thumbnail dimensions.
var ErrInvalidSize = errors.New("thumbnail size must be positive")

// halfBlock draws the top pixel in the foreground and the bottom pixel in
// the background, so one terminal cell holds two vertical pixels.
const halfBlock = "▀"

// Decode decodes JPEG or PNG artwork.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode artwork: %w", err)
	}
	return img, nil
}

// Scale resizes img to exactly width x height pixels.
//
// The Catmull-Rom kernel is used for high-quality resizing.
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Thumbnail renders artwork as ANSI half-block art, cols cells wide and
// rows lines tall. A non-positive rows keeps the image's aspect ratio,
// assuming cells twice as tall as they are wide.
//
// Example:
//
//	art, _ := svc.Fetch(ctx, album.ArtworkURL)
//	thumb, err := Thumbnail(art, 20, 0) // 20x10 cells for square artwork
func Thumbnail(data []byte, cols, rows int) (string, error) {
	if cols <= 0 {
		return "", ErrInvalidSize
	}
	img, err := Decode(data)
	if err != nil {
		return "", err
	}

	if rows <= 0 {
		b := img.Bounds()
		if b.Dx() == 0 {
			return "", ErrInvalidSize
		}
		// pixel height is cols * h / w, two pixels per line
		rows = max(1, (cols*b.Dy()/b.Dx()+1)/2)
	}

	return Render(Scale(img, cols, rows*2)), nil
}

// Render draws img with half blocks, two pixel rows per line.
func Render(img *image.RGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hex(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hex(img.At(x, y+1)))
			}
			line.WriteString(style.Render(halfBlock))
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8))
}
