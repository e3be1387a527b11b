package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// sourceGamma is the transfer curve assumed for 8-bit image files
const sourceGamma = 2.2

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Linear color, row-major from the top-left
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file into linear colors
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				toLinear(float64(r)/65535.0),
				toLinear(float64(g)/65535.0),
				toLinear(float64(b)/65535.0),
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

func toLinear(encoded float64) float64 {
	return math.Pow(encoded, sourceGamma)
}

// NewImageTextureFromFile loads an image texture. If the file cannot be read the
// error is logged and a texture that evaluates to cyan is returned instead.
func NewImageTextureFromFile(filename string, logger core.Logger) *material.ImageTexture {
	data, err := LoadImage(filename)
	if err != nil {
		if logger != nil {
			logger.Printf("Warning: could not load texture image: %v", err)
		}
		return material.NewMissingImageTexture()
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels)
}
