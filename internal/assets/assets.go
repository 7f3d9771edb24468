// Package assets builds the tinted logo images, one per palette color.
//
// The logo is an SVG whose fills use a black placeholder. Each tint is made
// by swapping the placeholder for the palette color in the SVG source and
// rasterizing the result.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/iburimskiy/logo-drift/internal/sim"
)

//go:embed logo.svg
var defaultLogo string

// Placeholder is the fill color replaced by the tint.
const Placeholder = "#000000"

var (
	ErrEmptyImage    = errors.New("logo rasterized to an empty image")
	ErrNoPlaceholder = errors.New("logo has no " + Placeholder + " fill to tint")
)

// DefaultLogo returns the built-in logo SVG source.
func DefaultLogo() string {
	return defaultLogo
}

// ReadLogo returns the SVG at path, or the built-in logo when path is empty.
func ReadLogo(path string) (string, error) {
	if path == "" {
		return defaultLogo, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}
	svg := string(b)
	if !strings.Contains(svg, Placeholder) {
		return "", fmt.Errorf("%s: %w", path, ErrNoPlaceholder)
	}
	return svg, nil
}

// Tint returns svg with every placeholder fill replaced by c.
func Tint(svg string, c sim.Color) string {
	return strings.ReplaceAll(svg, Placeholder, c.Hex())
}

// Rasterize renders svg scaled to a size x size image.
func Rasterize(svg string, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)

	if !hasInk(img) {
		return nil, ErrEmptyImage
	}
	return img, nil
}

func hasInk(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

// Atlas holds one uploaded image per palette color.
type Atlas[H any] struct {
	images [len(sim.Palette)]H
	size   int
}

// Build tints and rasterizes svg for every palette color and hands each
// result to upload. It fails if any color cannot be produced; the atlas is
// never partial.
func Build[H any](svg string, size int, upload func(*image.RGBA) H) (*Atlas[H], error) {
	a := &Atlas[H]{size: size}
	for _, c := range sim.Palette {
		img, err := Rasterize(Tint(svg, c), size)
		if err != nil {
			return nil, fmt.Errorf("tint %s: %w", c, err)
		}
		a.images[c] = upload(img)
	}
	return a, nil
}

// ImageFor returns the image tinted with c.
func (a *Atlas[H]) ImageFor(c sim.Color) H {
	if !c.Valid() {
		var zero H
		return zero
	}
	return a.images[c]
}

// Size returns the edge length the images were rasterized at.
func (a *Atlas[H]) Size() int {
	return a.size
}
