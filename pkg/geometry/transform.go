package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate places an object at an offset without copying it
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)
	if !t.Object.Hit(offsetRay, rayT, rec, sampler) {
		return false
	}
	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the child's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// PDFValue queries the child from the origin expressed in object space
func (t *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return t.Object.PDFValue(origin.Subtract(t.Offset), direction)
}

// Random samples the child from the origin expressed in object space
func (t *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return t.Object.Random(origin.Subtract(t.Offset), sampler)
}

// RotateY rotates an object about the world Y axis
type RotateY struct {
	Object   Hittable
	toWorld  mgl64.Mat3
	toObject mgl64.Mat3
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees counter-clockwise about +Y
func NewRotateY(object Hittable, angle float64) *RotateY {
	toWorld := mgl64.Rotate3DY(mgl64.DegToRad(angle))
	r := &RotateY{
		Object:   object,
		toWorld:  toWorld,
		toObject: toWorld.Transpose(),
	}

	bbox := object.BoundingBox()
	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					pick(bbox.X, i),
					pick(bbox.Y, j),
					pick(bbox.Z, k),
				)
				rotated := r.rotate(r.toWorld, corner)
				lo = core.NewVec3(min(lo.X, rotated.X), min(lo.Y, rotated.Y), min(lo.Z, rotated.Z))
				hi = core.NewVec3(max(hi.X, rotated.X), max(hi.Y, rotated.Y), max(hi.Z, rotated.Z))
			}
		}
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)
	return r
}

func pick(iv core.Interval, upper int) float64 {
	if upper == 1 {
		return iv.Max
	}
	return iv.Min
}

func (r *RotateY) rotate(m mgl64.Mat3, v core.Vec3) core.Vec3 {
	out := m.Mul3x1(mgl64.Vec3{v.X, v.Y, v.Z})
	return core.NewVec3(out[0], out[1], out[2])
}

// Hit rotates the ray into object space, intersects, and rotates the hit back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	rotated := core.NewRayAtTime(r.rotate(r.toObject, ray.Origin), r.rotate(r.toObject, ray.Direction), ray.Time)
	if !r.Object.Hit(rotated, rayT, rec, sampler) {
		return false
	}
	rec.Point = r.rotate(r.toWorld, rec.Point)
	rec.Normal = r.rotate(r.toWorld, rec.Normal)
	return true
}

// BoundingBox encloses the eight rotated corners of the child's box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}

// PDFValue queries the child with origin and direction in object space
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return r.Object.PDFValue(r.rotate(r.toObject, origin), r.rotate(r.toObject, direction))
}

// Random samples the child in object space and rotates the result to world space
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.rotate(r.toWorld, r.Object.Random(r.rotate(r.toObject, origin), sampler))
}
