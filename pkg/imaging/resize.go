// Package imaging scales gallery photos to the fixed widths served by the site.
package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"math"

	"golang.org/x/image/draw"
)

// DefaultQuality is the JPEG quality used for generated variants.
const DefaultQuality = 82

// Variant is one output resolution.
type Variant struct {
	Name  string
	Width int
}

// Variants lists the resolutions referenced by a gallery photo.
var Variants = []Variant{
	{Name: "thumbnail", Width: 400},
	{Name: "medium", Width: 1024},
	{Name: "full", Width: 1920},
}

// Decode reads a JPEG or PNG image.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// ResizeToWidth scales img to width keeping its aspect ratio. Images already
// narrower than width are copied at their original size, never upscaled.
func ResizeToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := w, h
	if w > width {
		newWidth = width
		newHeight = int(math.Round(float64(h) * float64(width) / float64(w)))
		if newHeight < 1 {
			newHeight = 1
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

// EncodeJPEG writes img as a JPEG of the given quality.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// AspectRatio returns width/height rounded to three decimals, or 0 for an
// empty rectangle.
func AspectRatio(r image.Rectangle) float64 {
	if r.Dy() == 0 {
		return 0
	}
	return math.Round(float64(r.Dx())/float64(r.Dy())*1000) / 1000
}
