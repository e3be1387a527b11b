package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// missingImageColor is returned when no image could be loaded
	missingImageColor = core.NewVec3(0, 1, 1)
	// missingPixelColor marks reads outside the pixel buffer
	missingPixelColor = core.NewVec3(1, 0, 1)
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major from the top-left: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewMissingImageTexture creates a texture with no image data. It evaluates to cyan.
func NewMissingImageTexture() *ImageTexture {
	return &ImageTexture{}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV is clamped to [0, 1]; v=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t == nil || t.Height <= 0 || t.Width <= 0 {
		return missingImageColor
	}

	unit := core.NewInterval(0, 1)
	u := unit.Clamp(uv.X)
	v := 1.0 - unit.Clamp(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	idx := y*t.Width + x
	if idx < 0 || idx >= len(t.Pixels) {
		return missingPixelColor
	}
	return t.Pixels[idx]
}
