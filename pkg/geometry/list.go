package geometry

import (
	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// List is a flat collection of hittables searched linearly
type List struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewList creates a list holding the given objects
func NewList(objects ...Hittable) *List {
	l := &List{bbox: core.EmptyAABB}
	for _, obj := range objects {
		l.Add(obj)
	}
	return l
}

// Add appends an object and grows the bounding box
func (l *List) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
	l.bbox = l.bbox.Union(object.BoundingBox())
}

// Len returns the number of objects
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Objects)
}

// Hit returns the nearest hit among all objects
func (l *List) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var temp material.HitRecord
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), &temp, sampler) {
			hitAnything = true
			closestSoFar = temp.T
			*rec = temp
		}
	}
	return hitAnything
}

// BoundingBox returns the union of all object boxes
func (l *List) BoundingBox() core.AABB {
	return l.bbox
}

// PDFValue averages the densities of all objects
func (l *List) PDFValue(origin, direction core.Vec3) float64 {
	if len(l.Objects) == 0 {
		return 0
	}
	weight := 1.0 / float64(len(l.Objects))
	return lo.SumBy(l.Objects, func(object Hittable) float64 {
		return weight * object.PDFValue(origin, direction)
	})
}

// Random samples a direction toward a uniformly chosen object
func (l *List) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	if len(l.Objects) == 0 {
		return core.NewVec3(1, 0, 0)
	}
	return l.Objects[core.RandomInt(sampler, len(l.Objects))].Random(origin, sampler)
}
