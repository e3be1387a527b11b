package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line. Zero numeric values keep the scene's own settings.
type options struct {
	sceneName string
	list      bool
	help      bool
	width     int
	spp       int
	depth     int
	workers   int
	passes    int
	seed      int64
	seedSet   bool
	out       string
	png       bool
	logLevel  slog.Level
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.help {
		printHelp(stdout, fs)
		return 0
	}
	if opts.list {
		for _, name := range scene.Names() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	logger := core.NewTextLogger(stderr, opts.logLevel)

	selectedScene, err := createScene(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	outputPath := opts.out
	if outputPath == "" {
		outputPath = createOutputPath(opts.sceneName, opts.png, time.Now())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config := renderer.DefaultProgressiveConfig()
	config.NumWorkers = opts.workers
	if opts.passes > 0 {
		config.MaxPasses = opts.passes
	}

	raytracer := renderer.NewProgressiveRaytracer(selectedScene, config, logger)
	film, stats, err := raytracer.Render(ctx, nil)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Error: render failed: %v\n", err)
			return 1
		}
		logger.Warn().Printf("Render interrupted, saving partial image")
	}
	logger.Printf("Render completed: %s", stats.Summary())

	if err := saveFilm(film, outputPath, opts.png); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Printf("Render saved as %s", outputPath)
	return 0
}

// parseFlags parses args into options
func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	var logLevel string

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneName, "scene", scene.DefaultSceneName, "Built-in scene name or path to a "+scene.ScriptExtension+" scene script")
	fs.BoolVar(&opts.list, "list", false, "List built-in scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.IntVar(&opts.passes, "passes", 1, "Number of progressive passes")
	fs.Int64Var(&opts.seed, "seed", 0, "Base random seed (default: scene seed)")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.ppm)")
	fs.BoolVar(&opts.png, "png", false, "Write PNG instead of PPM")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if fs.NArg() > 0 {
		return opts, fs, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return opts, fs, err
	}
	opts.logLevel = level

	for name, value := range map[string]int{"width": opts.width, "spp": opts.spp, "depth": opts.depth, "workers": opts.workers} {
		if value < 0 {
			return opts, fs, fmt.Errorf("-%s must not be negative, got %d", name, value)
		}
	}
	return opts, fs, nil
}

// parseLogLevel maps a level name to a slog level
func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Monte Carlo Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, name := range scene.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scene scripts (*%s) can be passed to -scene by path.\n", scene.ScriptExtension)
}

// createScene loads the requested scene and applies command line overrides
func createScene(opts options, logger core.Logger) (*scene.Scene, error) {
	s, err := scene.Load(opts.sceneName, logger)
	if err != nil {
		return nil, err
	}

	if opts.width > 0 {
		s.CameraConfig.ImageWidth = opts.width
	}
	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.seedSet {
		s.SamplingConfig.Seed = opts.seed
	}

	// Camera depends on the image width
	s.Preprocess()
	return s, nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.<ext>, naming script
// scenes after their file
func createOutputPath(sceneName string, usePNG bool, now time.Time) string {
	base := sceneName
	if scene.IsScript(sceneName) {
		base = strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	}
	ext := "ppm"
	if usePNG {
		ext = "png"
	}
	return filepath.Join("output", base, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), ext))
}

// saveFilm writes the film to path, creating parent directories as needed
func saveFilm(film *renderer.Film, path string, usePNG bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if usePNG {
		err = film.WritePNG(file)
	} else {
		err = film.WritePPM(file)
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return file.Close()
}
