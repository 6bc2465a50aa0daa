// Package background provides background image loading and on-disk change
// watching for the drawing canvas.
package background

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"

	"route-marker/pkg/geometry"
)

// Image is a decoded background raster.
type Image struct {
	Path  string
	Image image.Image
}

// NaturalSize returns the image's pixel dimensions.
func (b *Image) NaturalSize() geometry.Size {
	bounds := b.Image.Bounds()
	return geometry.NewSize(float64(bounds.Dx()), float64(bounds.Dy()))
}

// Load opens and decodes a raster image (PNG, JPEG, GIF, or TIFF).
func Load(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Image{Path: path, Image: img}, nil
}
