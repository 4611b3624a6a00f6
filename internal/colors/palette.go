// Package colors derives a brand palette from a logo or preview image and
// merges it with extractor suggestions and hardcoded defaults.
package colors

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Register decoders for the image formats logos ship in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/EdlinOrg/prominentcolor"
)

// maxImageBytes caps how much image data is downloaded for palette work.
const maxImageBytes = 5 << 20

// downloadTimeout bounds the image fetch.
const downloadTimeout = 15 * time.Second

// Palette holds the perceptual swatches derived from an image. Empty fields
// mean the swatch could not be derived.
type Palette struct {
	Vibrant      string
	Muted        string
	LightVibrant string
}

// Extractor downloads images and derives dominant-color palettes.
type Extractor struct {
	client *http.Client
}

// NewExtractor creates an Extractor with a bounded download timeout.
func NewExtractor() *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: downloadTimeout},
	}
}

// PaletteOf downloads imageURL, decodes it, and derives vibrant, muted, and
// light-vibrant swatches from its dominant colors.
func (e *Extractor) PaletteOf(ctx context.Context, imageURL string) (*Palette, error) {
	img, err := e.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	items, err := prominentcolor.Kmeans(img)
	if err != nil {
		return nil, fmt.Errorf("dominant color extraction failed: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no dominant colors found")
	}

	return classifySwatches(items), nil
}

func (e *Extractor) download(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}
	return img, nil
}

// classifySwatches maps dominant colors onto the vibrant/muted/light roles
// by saturation and lightness.
func classifySwatches(items []prominentcolor.ColorItem) *Palette {
	palette := &Palette{}

	bestVibrant, bestMuted, bestLight := -1.0, 2.0, -1.0
	for _, item := range items {
		hexColor := rgbToHex(item.Color.R, item.Color.G, item.Color.B)
		_, s, l := rgbToHSL(item.Color.R, item.Color.G, item.Color.B)

		// Vibrant: saturated and mid-lightness.
		vibrancy := s * (1 - abs(l-0.5)*2)
		if vibrancy > bestVibrant {
			bestVibrant = vibrancy
			palette.Vibrant = hexColor
		}

		if s < bestMuted {
			bestMuted = s
			palette.Muted = hexColor
		}

		// Light vibrant: bright but still colorful.
		lightness := l * s
		if l > 0.55 && lightness > bestLight {
			bestLight = lightness
			palette.LightVibrant = hexColor
		}
	}

	return palette
}

func rgbToHex(r, g, b uint32) string {
	return fmt.Sprintf("#%02X%02X%02X", uint8(r), uint8(g), uint8(b))
}

func rgbToHSL(r, g, b uint32) (h, s, l float64) {
	rf := float64(uint8(r)) / 255
	gf := float64(uint8(g)) / 255
	bf := float64(uint8(b)) / 255

	maxC := max3(rf, gf, bf)
	minC := min3(rf, gf, bf)
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h /= 6

	return h, s, l
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func max3(a, b, c float64) float64 {
	if a > b {
		b = a
	}
	if b > c {
		return b
	}
	return c
}

func min3(a, b, c float64) float64 {
	if a < b {
		b = a
	}
	if b < c {
		return b
	}
	return c
}
