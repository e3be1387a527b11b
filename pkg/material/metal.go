package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a reflective metallic material
type Metal struct {
	baseMaterial
	Albedo core.Vec3
	Fuzz   float64 // 0 is a perfect mirror, 1 is maximally fuzzy
}

// NewMetal creates a metal material; fuzz is clamped to [0, 1]
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

// Scatter reflects the ray about the normal, perturbed by the fuzz factor
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	reflected := reflectVector(rayIn.Direction, hit.Normal).Normalize()
	reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	reflected = scatterDirection(reflected, hit.Normal)

	return ScatterRecord{
		Attenuation: m.Albedo,
		SkipPDF:     true,
		SkipPDFRay:  core.NewRayAtTime(hit.Point, reflected, rayIn.Time),
	}, true
}

// reflectVector calculates the reflection of a vector v off a surface with normal n
func reflectVector(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
