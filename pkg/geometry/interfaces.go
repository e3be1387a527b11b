package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, lists, BVH nodes,
// instance transforms and media.
type Hittable interface {
	// Hit reports the nearest intersection with t inside rayT and fills rec.
	// rec is only written when Hit returns true. sampler supplies the path's
	// random numbers for primitives that need them; it may be nil when the
	// caller only queries deterministic geometry.
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool

	// BoundingBox returns a box enclosing the object over the whole shutter interval
	BoundingBox() core.AABB

	// PDFValue is the solid-angle density of sampling direction from origin
	// toward this object. It is zero for objects that cannot be sampled.
	PDFValue(origin, direction core.Vec3) float64

	// Random returns a direction from origin toward this object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// noLightSampling gives objects that are never importance-sampled the
// zero density and a fixed direction.
type noLightSampling struct{}

func (noLightSampling) PDFValue(origin, direction core.Vec3) float64 {
	return 0
}

func (noLightSampling) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}

// lightQueryInterval is the range used when casting query rays toward emitters
var lightQueryInterval = core.NewInterval(0.001, inf)
