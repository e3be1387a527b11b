package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// EarthTexturePath is where the earth scenes look for their texture map
var EarthTexturePath = "images/earthmap.jpg"

// layoutSeed seeds the random placement and noise of built-in scenes
const layoutSeed = 1

var skyBlue = core.NewVec3(0.70, 0.80, 1.00)

// randomRange returns a uniform value in [lo, hi)
func randomRange(sampler core.Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// outdoorCamera is the 16:9 view from (13,2,3) shared by the sphere scenes
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio: 16.0 / 9.0,
		ImageWidth:  400,
		VFov:        20,
		LookFrom:    core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
}

func checkerGround() material.ColorSource {
	return material.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
}

// NewBouncingSpheres creates the cover scene: a checkered ground covered in small
// random spheres, some of them moving, plus three large ones
func NewBouncingSpheres(logger core.Logger) *Scene {
	s := New("bouncing-spheres")
	s.CameraConfig = outdoorCamera()
	s.CameraConfig.DefocusAngle = 0.6
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 30, MaxDepth: 10, Seed: 42}
	s.Background = skyBlue

	sampler := core.NewSeededSampler(layoutSeed)
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checkerGround())))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D()
				center2 := center.Add(core.NewVec3(0, randomRange(sampler, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(randomRange(sampler, 0.5, 1), randomRange(sampler, 0.5, 1), randomRange(sampler, 0.5, 1))
				fuzz := randomRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// NewCheckeredSpheres creates two huge checkered spheres touching at the origin
func NewCheckeredSpheres(logger core.Logger) *Scene {
	s := New("checkered-spheres")
	s.CameraConfig = outdoorCamera()
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 30, MaxDepth: 10, Seed: 42}
	s.Background = skyBlue

	checker := material.NewTexturedLambertian(checkerGround())
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s
}

// NewEarth creates a single image-textured globe
func NewEarth(logger core.Logger) *Scene {
	s := New("earth")
	s.CameraConfig = outdoorCamera()
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 30, MaxDepth: 10, Seed: 42}
	s.Background = skyBlue

	earthTexture := loaders.NewImageTextureFromFile(EarthTexturePath, logger)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earthTexture)))
	return s
}

// NewPerlinSpheres creates a marble sphere resting on a marble ground
func NewPerlinSpheres(logger core.Logger) *Scene {
	s := New("perlin-spheres")
	s.CameraConfig = outdoorCamera()
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 30, MaxDepth: 10, Seed: 42}
	s.Background = skyBlue

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, core.NewSeededSampler(layoutSeed)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return s
}
