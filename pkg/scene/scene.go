package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	Background     core.Vec3         // Radiance of rays that escape the scene
	Objects        *geometry.List    // Everything a ray can hit
	Lights         *geometry.List    // Objects to steer samples toward; never intersected for shading
	World          geometry.Hittable // Acceleration structure over Objects, built by Preprocess

	camera *renderer.Camera
}

// New creates an empty scene with default camera and sampling settings
func New(name string) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   renderer.DefaultCameraConfig(),
		SamplingConfig: renderer.DefaultSamplingConfig(),
		Objects:        geometry.NewList(),
		Lights:         geometry.NewList(),
	}
}

// Add adds objects to the world
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, obj := range objects {
		s.Objects.Add(obj)
	}
}

// AddLight registers objects for importance sampling only. They are not added
// to the world, so the same shape usually needs to be added there too.
func (s *Scene) AddLight(objects ...geometry.Hittable) {
	for _, obj := range objects {
		s.Lights.Add(obj)
	}
}

// AddQuadLight adds a rectangular area light to the world and to the light list
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) *geometry.Quad {
	quad := geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission))
	s.Add(quad)
	s.AddLight(quad)
	return quad
}

// AddSphereLight adds a spherical light to the world and to the light list
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, material.NewDiffuseLight(emission))
	s.Add(sphere)
	s.AddLight(sphere)
	return sphere
}

// Preprocess builds the BVH over all objects and the camera. It must be called
// again after the scene is modified.
func (s *Scene) Preprocess() {
	s.World = geometry.NewBVHFromList(s.Objects)
	s.camera = renderer.NewCamera(s.CameraConfig)
}

// GetWorld returns the acceleration structure, building it if needed
func (s *Scene) GetWorld() geometry.Hittable {
	if s.World == nil {
		s.Preprocess()
	}
	return s.World
}

// GetLights returns the importance-sampling list, or nil when there is nothing to sample
func (s *Scene) GetLights() geometry.Hittable {
	if s.Lights.Len() == 0 {
		return nil
	}
	return s.Lights
}

// GetBackground returns the background radiance
func (s *Scene) GetBackground() core.Vec3 {
	return s.Background
}

// GetCamera returns the camera, building it if needed
func (s *Scene) GetCamera() *renderer.Camera {
	if s.camera == nil {
		s.Preprocess()
	}
	return s.camera
}

// GetSamplingConfig returns the sampling settings
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Objects.Len()
}
