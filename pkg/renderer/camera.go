package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio  float64   // Width over height
	ImageWidth   int       // Rendered image width in pixels
	VFov         float64   // Vertical field of view in degrees
	LookFrom     core.Vec3 // Eye position
	LookAt       core.Vec3 // Point the camera looks at
	VUp          core.Vec3 // Camera-relative up direction
	DefocusAngle float64   // Variation angle of rays through each pixel, in degrees
	FocusDist    float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns a square 600-pixel view down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio: 1.0,
		ImageWidth:  600,
		VFov:        40,
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
}

// Camera generates primary rays through a pinhole or thin-lens aperture
type Camera struct {
	imageWidth    int
	imageHeight   int
	center        core.Vec3
	pixel00Loc    core.Vec3 // Center of pixel (0, 0), the top-left corner
	pixelDeltaU   core.Vec3 // Offset to the pixel to the right
	pixelDeltaV   core.Vec3 // Offset to the pixel below
	defocusDiskU  core.Vec3
	defocusDiskV  core.Vec3
	defocusActive bool
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1
	}
	if config.ImageWidth < 1 {
		config.ImageWidth = 1
	}
	if config.FocusDist <= 0 {
		config.FocusDist = 10
	}

	imageWidth := config.ImageWidth
	imageHeight := max(1, int(float64(imageWidth)/config.AspectRatio))

	center := config.LookFrom

	h := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * (float64(imageWidth) / float64(imageHeight))

	// Orthonormal camera frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(imageWidth))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))

	return &Camera{
		imageWidth:    imageWidth,
		imageHeight:   imageHeight,
		center:        center,
		pixel00Loc:    pixel00Loc,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
		defocusDiskU:  u.Multiply(defocusRadius),
		defocusDiskV:  v.Multiply(defocusRadius),
		defocusActive: config.DefocusAngle > 0,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.imageWidth
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.imageHeight
}

// GetRay returns a ray through a uniformly jittered point of pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	return c.rayThrough(i, j, jitter.X-0.5, jitter.Y-0.5, sampler)
}

// GetStratifiedRay returns a ray jittered within sub-pixel cell (si, sj) of
// an n×n grid over pixel (i, j)
func (c *Camera) GetStratifiedRay(i, j, si, sj, n int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()
	recip := 1.0 / float64(n)
	offsetX := (float64(si)+jitter.X)*recip - 0.5
	offsetY := (float64(sj)+jitter.Y)*recip - 0.5
	return c.rayThrough(i, j, offsetX, offsetY, sampler)
}

func (c *Camera) rayThrough(i, j int, offsetX, offsetY float64, sampler core.Sampler) core.Ray {
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	origin := c.center
	if c.defocusActive {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// defocusDiskSample returns a random point on the lens disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SamplePointInUnitDisk(sampler.Get2D())
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
