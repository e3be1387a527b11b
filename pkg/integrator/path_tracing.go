package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// DefaultAcneBound is the smallest hit distance accepted after a bounce
const DefaultAcneBound = 0.001

// Config controls path termination
type Config struct {
	MaxDepth  int     // Maximum number of bounces
	AcneBound float64 // Minimum hit distance, suppresses self-intersection
}

// DefaultConfig returns the standard bounce limit and acne bound
func DefaultConfig() Config {
	return Config{MaxDepth: 50, AcneBound: DefaultAcneBound}
}

// PathTracingIntegrator implements unidirectional path tracing with the
// material density mixed 50/50 with a density aimed at the scene's lights
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.AcneBound <= 0 {
		config.AcneBound = DefaultAcneBound
	}
	return &PathTracingIntegrator{config: config}
}

// RayColor computes the radiance along ray. Each bounce adds emission weighted by
// the running throughput, then multiplies the throughput by
// attenuation · scatteringPDF / samplingPDF for the chosen continuation.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	world := scene.GetWorld()
	lights := scene.GetLights()
	background := scene.GetBackground()

	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)
	rayT := core.NewInterval(pt.config.AcneBound, math.Inf(1))

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		var hit material.HitRecord
		if !world.Hit(ray, rayT, &hit, sampler) {
			radiance = radiance.Add(throughput.MultiplyVec(background))
			break
		}

		emitted := hit.Material.Emitted(ray, &hit, hit.UV, hit.Point)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
		if !didScatter {
			break
		}

		if scatter.SkipPDF {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.SkipPDFRay
			continue
		}

		scattered, weight, ok := pt.sampleDirection(ray, &hit, scatter, lights, sampler)
		if !ok {
			break
		}
		throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(weight)
		ray = scattered
	}

	return radiance
}

// sampleDirection draws the next direction from the light/material mixture and
// returns it with the weight scatteringPDF / mixturePDF. A path whose density
// vanishes or is not finite is terminated.
func (pt *PathTracingIntegrator) sampleDirection(ray core.Ray, hit *material.HitRecord, scatter material.ScatterRecord, lights geometry.Hittable, sampler core.Sampler) (core.Ray, float64, bool) {
	var sampling pdf.PDF = scatter.PDF
	if hasLights(lights) {
		sampling = pdf.NewMixturePDF(pdf.NewHittablePDF(lights, hit.Point), scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, sampling.Generate(sampler), ray.Time)
	pdfValue := sampling.Value(scattered.Direction)
	if !(pdfValue > 0) || math.IsInf(pdfValue, 0) {
		return scattered, 0, false
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	return scattered, scatteringPDF / pdfValue, true
}

// hasLights reports whether lights contains anything to sample
func hasLights(lights geometry.Hittable) bool {
	if lights == nil {
		return false
	}
	if list, ok := lights.(*geometry.List); ok {
		return list.Len() > 0
	}
	return true
}
