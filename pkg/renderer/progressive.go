package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Base seed; tile i uses Seed+i
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Scene is everything the renderer needs from a scene
type Scene interface {
	integrator.Scene
	GetCamera() *Camera
	GetSamplingConfig() SamplingConfig
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize       int // Size of each square tile in pixels
	InitialSamples int // Samples for the first pass when MaxPasses > 1
	MaxPasses      int // Number of passes to reach the full sample count
	NumWorkers     int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:       32,
		InitialSamples: 1,
		MaxPasses:      1,
		NumWorkers:     0, // Auto-detect CPU count
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Film       *Film
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRaytracer renders an image in one or more passes, each pass
// raising every pixel to a higher sample count
type ProgressiveRaytracer struct {
	scene    Scene
	sampling SamplingConfig
	config   ProgressiveConfig
	width    int
	height   int
	tiles    []*Tile
	film     *Film
	renderer *TileRenderer
	logger   core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if logger == nil {
		logger = core.NopLogger()
	}
	if config.MaxPasses < 1 {
		config.MaxPasses = 1
	}
	if config.InitialSamples < 1 {
		config.InitialSamples = 1
	}

	sampling := scene.GetSamplingConfig()
	if sampling.SamplesPerPixel < 1 {
		sampling.SamplesPerPixel = 1
	}

	camera := scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	pathTracer := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:  sampling.MaxDepth,
		AcneBound: integrator.DefaultAcneBound,
	})

	return &ProgressiveRaytracer{
		scene:    scene,
		sampling: sampling,
		config:   config,
		width:    width,
		height:   height,
		tiles:    NewTileGrid(width, height, config.TileSize, sampling.Seed),
		film:     NewFilm(width, height),
		renderer: NewTileRenderer(scene, camera, pathTracer, sampling.SamplesPerPixel),
		logger:   logger,
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	maxSamples := pr.sampling.SamplesPerPixel
	if pr.config.MaxPasses == 1 || passNumber >= pr.config.MaxPasses {
		return maxSamples
	}
	if passNumber == 1 {
		return min(pr.config.InitialSamples, maxSamples)
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := maxSamples - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	return min(maxSamples, pr.config.InitialSamples+(passNumber-1)*samplesPerPass)
}

// Film returns the accumulated image
func (pr *ProgressiveRaytracer) Film() *Film {
	return pr.film
}

// RenderPass renders one pass over every tile using a fresh worker pool
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int) (RenderStats, error) {
	targetSamples := pr.getSamplesForPass(passNumber)

	pool := NewWorkerPool(pr.renderer, pr.config.NumWorkers, len(pr.tiles))
	pr.logger.Printf("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pool.GetNumWorkers())

	pool.Start(ctx)
	for taskID, tile := range pr.tiles {
		pool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			Film:          pr.film,
		})
	}

	stats := RenderStats{Passes: passNumber}
	var firstErr error
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		pr.tiles[result.TaskID].PassesCompleted++
		stats.Merge(result.Stats)
	}
	pool.Stop()

	if firstErr != nil {
		return stats, fmt.Errorf("pass %d: %w", passNumber, firstErr)
	}
	stats.finalize()
	return stats, nil
}

// Render runs every pass, calling onPass (if not nil) after each one.
// Cancelling ctx stops rendering between tiles.
func (pr *ProgressiveRaytracer) Render(ctx context.Context, onPass func(PassResult)) (*Film, RenderStats, error) {
	start := time.Now()
	total := RenderStats{TotalPixels: pr.width * pr.height}

	pr.logger.Printf("Rendering %dx%d at %d samples per pixel in %d passes",
		pr.width, pr.height, pr.sampling.SamplesPerPixel, pr.config.MaxPasses)

	for pass := 1; pass <= pr.config.MaxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			pr.logger.Printf("Rendering cancelled before pass %d", pass)
			return pr.film, total, err
		}

		passStart := time.Now()
		stats, err := pr.RenderPass(ctx, pass)
		if err != nil {
			return pr.film, total, err
		}
		stats.Duration = time.Since(passStart)

		total.TotalSamples += stats.TotalSamples
		total.Passes = pass
		total.Duration = time.Since(start)
		total.finalize()

		pr.logger.Printf("Pass %d completed: %s", pass, stats.Summary())

		if onPass != nil {
			onPass(PassResult{
				PassNumber: pass,
				Film:       pr.film,
				Stats:      total,
				IsLast:     pass == pr.config.MaxPasses,
			})
		}
	}

	return pr.film, total, nil
}
