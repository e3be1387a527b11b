package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewQuads creates five colored quads forming an open box around the origin
func NewQuads(logger core.Logger) *Scene {
	s := New("quads")
	s.CameraConfig = renderer.CameraConfig{
		AspectRatio: 1.0,
		ImageWidth:  400,
		VFov:        80,
		LookFrom:    core.NewVec3(0, 0, 9),
		LookAt:      core.NewVec3(0, 0, 0),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50, Seed: 42}
	s.Background = skyBlue

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	s.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)
	return s
}

// NewSimpleLight creates the marble spheres lit only by a small sphere and a quad light
func NewSimpleLight(logger core.Logger) *Scene {
	s := New("simple-light")
	s.CameraConfig = renderer.CameraConfig{
		AspectRatio: 16.0 / 9.0,
		ImageWidth:  400,
		VFov:        20,
		LookFrom:    core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50, Seed: 42}
	s.Background = core.NewVec3(0, 0, 0)

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, core.NewSeededSampler(layoutSeed)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	emission := core.NewVec3(5, 5, 5)
	s.AddSphereLight(core.NewVec3(2, 5, 2), 0.5, emission)
	s.AddQuadLight(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), emission)
	return s
}

// NewFinalScene creates the closing scene with every feature: a field of boxes,
// motion blur, glass, metal, subsurface fog, global mist, an image texture,
// Perlin noise and an instanced cluster of spheres
func NewFinalScene(logger core.Logger) *Scene {
	s := New("final-scene")
	s.CameraConfig = renderer.CameraConfig{
		AspectRatio: 1.0,
		ImageWidth:  800,
		VFov:        40,
		LookFrom:    core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 1000, MaxDepth: 40, Seed: 42}
	s.Background = core.NewVec3(0, 0, 0)

	sampler := core.NewSeededSampler(layoutSeed)

	// Mint green boxes of random height
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	var boxes []geometry.Hittable
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(sampler, 1, 101)
			boxes = append(boxes, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVH(boxes))

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewVec3(7, 7, 7))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center1, center2, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell filled with blue fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(boundary, geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earthTexture := loaders.NewImageTextureFromFile(EarthTexturePath, logger)
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earthTexture)))

	noise := material.NewNoiseTexture(0.2, sampler)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(noise)))

	// Cluster of white spheres inside an imaginary rotated cube
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for j := 0; j < clusterSize; j++ {
		cluster = append(cluster, geometry.NewSphere(sampler.Get3D().Multiply(165), 10, white))
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(geometry.NewBVH(cluster), 15), core.NewVec3(-100, 270, 395)))

	return s
}
