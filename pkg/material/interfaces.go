package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material describes how a surface emits and scatters light
type Material interface {
	// Emitted returns radiance leaving the surface toward the ray origin
	Emitted(rayIn core.Ray, hit *HitRecord, uv core.Vec2, point core.Vec3) core.Vec3

	// Scatter decides how an incoming ray continues. It returns false when
	// the ray is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool)

	// ScatteringPDF is the material's own density for the scattered direction
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64
}

// ScatterRecord contains the result of material scattering
type ScatterRecord struct {
	Attenuation core.Vec3 // Color attenuation
	PDF         pdf.PDF   // Direction distribution, nil for specular materials
	SkipPDF     bool      // Follow SkipPDFRay instead of sampling a PDF
	SkipPDFRay  core.Ray  // Dictated ray for specular materials
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always opposing the ray
	Material  Material  // Material of the hit object
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface coordinates
	FrontFace bool      // Whether ray hit the front face
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// baseMaterial supplies the no-op behavior: no emission, no scattering
type baseMaterial struct{}

func (baseMaterial) Emitted(core.Ray, *HitRecord, core.Vec2, core.Vec3) core.Vec3 {
	return core.Vec3{}
}

func (baseMaterial) Scatter(core.Ray, *HitRecord, core.Sampler) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

func (baseMaterial) ScatteringPDF(core.Ray, *HitRecord, core.Ray) float64 {
	return 0
}

// Empty is a material that neither emits nor scatters. It is used for
// geometry that only exists to be importance-sampled.
type Empty struct {
	baseMaterial
}

// NewEmpty creates an inert material
func NewEmpty() *Empty {
	return &Empty{}
}

// scatterDirection falls back to the normal when a constructed direction degenerates
func scatterDirection(direction, normal core.Vec3) core.Vec3 {
	if direction.NearZero() {
		return normal
	}
	return direction
}
