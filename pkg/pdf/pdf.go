// Package pdf provides the direction distributions used for importance sampling.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a probability density over directions
type PDF interface {
	// Value returns the density for direction (non-negative)
	Value(direction core.Vec3) float64
	// Generate draws a direction distributed according to the density
	Generate(sampler core.Sampler) core.Vec3
}

// Target is anything that can be importance-sampled from a point,
// typically an emitter or a list of emitters
type Target interface {
	PDFValue(origin, direction core.Vec3) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// SpherePDF is uniform over all directions
type SpherePDF struct{}

// NewSpherePDF creates a uniform sphere density
func NewSpherePDF() SpherePDF {
	return SpherePDF{}
}

// Value returns 1/4π
func (SpherePDF) Value(direction core.Vec3) float64 {
	return 1 / (4 * math.Pi)
}

// Generate returns a uniform unit vector
func (SpherePDF) Generate(sampler core.Sampler) core.Vec3 {
	return core.RandomUnitVector(sampler)
}

// CosinePDF is cosine-weighted about a normal
type CosinePDF struct {
	uvw core.ONB
}

// NewCosinePDF creates a cosine density around w
func NewCosinePDF(w core.Vec3) CosinePDF {
	return CosinePDF{uvw: core.NewONB(w)}
}

// Value returns max(0, cosθ/π)
func (p CosinePDF) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(p.uvw.W)
	return math.Max(0, cosine/math.Pi)
}

// Generate returns a cosine-weighted direction around the normal
func (p CosinePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.uvw.Transform(core.RandomCosineDirection(sampler.Get2D()))
}

// HittablePDF samples directions toward a target as seen from origin
type HittablePDF struct {
	target Target
	origin core.Vec3
}

// NewHittablePDF creates a density aimed at target from origin
func NewHittablePDF(target Target, origin core.Vec3) HittablePDF {
	return HittablePDF{target: target, origin: origin}
}

// Value delegates to the target's solid-angle density
func (p HittablePDF) Value(direction core.Vec3) float64 {
	return p.target.PDFValue(p.origin, direction)
}

// Generate delegates to the target's direction sampler
func (p HittablePDF) Generate(sampler core.Sampler) core.Vec3 {
	return p.target.Random(p.origin, sampler)
}

// MixturePDF is an equal-weight blend of two densities
type MixturePDF struct {
	p [2]PDF
}

// NewMixturePDF blends a and b with weight 0.5 each
func NewMixturePDF(a, b PDF) MixturePDF {
	return MixturePDF{p: [2]PDF{a, b}}
}

// Value returns 0.5·a + 0.5·b
func (m MixturePDF) Value(direction core.Vec3) float64 {
	return 0.5*m.p[0].Value(direction) + 0.5*m.p[1].Value(direction)
}

// Generate draws from a or b with equal probability
func (m MixturePDF) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.p[0].Generate(sampler)
	}
	return m.p[1].Generate(sampler)
}
