package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Scene is the read-only view of a scene that light transport needs
type Scene interface {
	// GetWorld returns the acceleration structure over every object
	GetWorld() geometry.Hittable
	// GetLights returns the objects to importance-sample, or nil
	GetLights() geometry.Hittable
	// GetBackground returns the radiance carried by rays that escape
	GetBackground() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
