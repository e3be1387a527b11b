package renderer

import (
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      integrator.Scene
	camera     *Camera
	integrator integrator.Integrator
	strata     int // sub-pixel grid size for stratified jitter
}

// NewTileRenderer creates a tile renderer. samplesPerPixel sets the size of the
// stratification grid (its integer square root).
func NewTileRenderer(scene integrator.Scene, camera *Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		camera:     camera,
		integrator: integratorInst,
		strata:     max(1, int(math.Sqrt(float64(samplesPerPixel)))),
	}
}

// RenderTileBounds brings every pixel within bounds up to targetSamples samples
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, film *Film, sampler core.Sampler, targetSamples int) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}
	cells := tr.strata * tr.strata

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &film.Pixels[j][i]
			for ps.SampleCount < targetSamples {
				cell := ps.SampleCount % cells
				ray := tr.camera.GetStratifiedRay(i, j, cell%tr.strata, cell/tr.strata, tr.strata, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.scene, sampler))
				stats.TotalSamples++
			}
		}
	}

	return stats
}
