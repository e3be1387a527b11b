package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// intensity is the range linear components are clamped to before quantization
var intensity = core.NewInterval(0.000, 0.999)

// Film holds per-pixel sample accumulators in image coordinates (row 0 at the top)
type Film struct {
	Width  int
	Height int
	Pixels [][]PixelStats
}

// NewFilm allocates an empty film
func NewFilm(width, height int) *Film {
	pixels := make([][]PixelStats, height)
	for y := range pixels {
		pixels[y] = make([]PixelStats, width)
	}
	return &Film{Width: width, Height: height, Pixels: pixels}
}

// LinearToGamma applies the gamma-2 transfer: sqrt for positive values, 0 otherwise.
// NaN maps to 0.
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// QuantizeComponent maps a linear component to a byte: gamma, clamp to
// [0, 0.999], then int(256·c)
func QuantizeComponent(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}

// vec3ToColor converts a linear color to an 8-bit RGBA color
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: QuantizeComponent(c.X),
		G: QuantizeComponent(c.Y),
		B: QuantizeComponent(c.Z),
		A: 255,
	}
}

// ToRGBA converts the averaged pixels to an 8-bit image
func (f *Film) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.Pixels[y][x].GetColor()))
		}
	}
	return img
}

// WritePPM writes the film as plain-text PPM: a "P3" header, then one
// "r g b" line per pixel, rows from the top
func (f *Film) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Pixels[y][x].GetColor()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", QuantizeComponent(c.X), QuantizeComponent(c.Y), QuantizeComponent(c.Z)); err != nil {
				return fmt.Errorf("failed to write PPM pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// WritePNG encodes the film as PNG
func (f *Film) WritePNG(w io.Writer) error {
	if err := png.Encode(w, f.ToRGBA()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
