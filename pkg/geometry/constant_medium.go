package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a homogeneous participating medium (smoke, fog)
// filling a convex boundary
type ConstantMedium struct {
	noLightSampling
	Boundary      Hittable
	Density       float64
	negInvDensity float64
	phase         material.Material
}

// NewConstantMedium fills boundary with a medium of the given density and albedo
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium fills boundary with a medium whose albedo varies in space
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		negInvDensity: -1 / density,
		phase:         material.NewTexturedIsotropic(albedo),
	}
}

// Hit samples a free-flight distance through the boundary chord. Without a
// sampler, or with non-positive density, the medium never scatters.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if sampler == nil || m.Density <= 0 {
		return false
	}

	var rec1, rec2 material.HitRecord
	if !m.Boundary.Hit(ray, core.UniverseInterval, &rec1, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(rec1.T+0.0001, math.Inf(1)), &rec2, sampler) {
		return false
	}

	if rec1.T < rayT.Min {
		rec1.T = rayT.Min
	}
	if rec2.T > rayT.Max {
		rec2.T = rayT.Max
	}
	if rec1.T >= rec2.T {
		return false
	}
	if rec1.T < 0 {
		rec1.T = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (rec2.T - rec1.T) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = rec1.T + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0) // arbitrary
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.phase
	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
