package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera(width int) renderer.CameraConfig {
	return renderer.CameraConfig{
		AspectRatio: 1.0,
		ImageWidth:  width,
		VFov:        40,
		LookFrom:    core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		VUp:         core.NewVec3(0, 1, 0),
		FocusDist:   10,
	}
}

// addCornellWalls adds the five walls (open towards the camera) of a standard box
func addCornellWalls(s *Scene, white material.Material) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	size := cornellBoxSize

	s.Add(
		// Right wall (green) - YZ plane at x=size
		geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green),
		// Left wall (red) - YZ plane at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), red),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(size, size, size), core.NewVec3(-size, 0, 0), core.NewVec3(0, 0, -size), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white),
	)
}

// tallBox returns the 165x330x165 box, rotated and moved into place
func tallBox(mat material.Material) geometry.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, 15), core.NewVec3(265, 0, 295))
}

// shortBox returns the 165x165x165 box, rotated and moved into place
func shortBox(mat material.Material) geometry.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, -18), core.NewVec3(130, 0, 65))
}

// NewCornellBox creates the classic Cornell box with a tall box and a glass sphere.
// The ceiling light and the sphere are both importance sampled.
func NewCornellBox(logger core.Logger) *Scene {
	s := New("cornell-box")
	s.CameraConfig = cornellCamera(800)
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 1000, MaxDepth: 250, Seed: 42}
	s.Background = core.NewVec3(0, 0, 0)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	addCornellWalls(s, white)

	lightCorner := core.NewVec3(343, 554, 332)
	lightU := core.NewVec3(-130, 0, 0)
	lightV := core.NewVec3(0, 0, -105)
	s.Add(geometry.NewQuad(lightCorner, lightU, lightV, material.NewDiffuseLight(core.NewVec3(15, 15, 15))))

	s.Add(tallBox(white))

	sphereCenter := core.NewVec3(190, 90, 190)
	s.Add(geometry.NewSphere(sphereCenter, 90, material.NewDielectric(1.5)))

	// Sampling-only stand-ins; their material is never shaded
	empty := material.NewEmpty()
	s.AddLight(
		geometry.NewQuad(lightCorner, lightU, lightV, empty),
		geometry.NewSphere(sphereCenter, 90, empty),
	)

	return s
}

// NewCornellSmoke creates the Cornell box with both boxes replaced by smoke
func NewCornellSmoke(logger core.Logger) *Scene {
	s := New("cornell-smoke")
	s.CameraConfig = cornellCamera(600)
	s.SamplingConfig = renderer.SamplingConfig{SamplesPerPixel: 50, MaxDepth: 20, Seed: 42}
	s.Background = core.NewVec3(0, 0, 0)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	addCornellWalls(s, white)
	s.AddQuadLight(core.NewVec3(113, 554, 127), core.NewVec3(330, 0, 0), core.NewVec3(0, 0, 305), core.NewVec3(7, 7, 7))

	s.Add(
		geometry.NewConstantMedium(tallBox(white), 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMedium(shortBox(white), 0.01, core.NewVec3(1, 1, 1)),
	)

	return s
}
