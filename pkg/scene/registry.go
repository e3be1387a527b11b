package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultSceneName is the scene rendered when none is requested
const DefaultSceneName = "cornell-box"

// ScriptExtension marks a scene name as a path to a scene script
const ScriptExtension = ".zy"

// Builder constructs a built-in scene
type Builder func(logger core.Logger) *Scene

var builtins = map[string]Builder{
	"bouncing-spheres":  NewBouncingSpheres,
	"checkered-spheres": NewCheckeredSpheres,
	"earth":             NewEarth,
	"perlin-spheres":    NewPerlinSpheres,
	"quads":             NewQuads,
	"simple-light":      NewSimpleLight,
	"cornell-box":       NewCornellBox,
	"cornell-smoke":     NewCornellSmoke,
	"final-scene":       NewFinalScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := lo.Keys(builtins)
	slices.Sort(names)
	return names
}

// IsScript reports whether name refers to a scene script file
func IsScript(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ScriptExtension)
}

// Load returns a preprocessed scene, either a built-in by name or a script by path
func Load(nameOrPath string, logger core.Logger) (*Scene, error) {
	if logger == nil {
		logger = core.NopLogger()
	}

	var s *Scene
	if IsScript(nameOrPath) {
		loaded, err := LoadScriptFile(nameOrPath, logger)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		build, ok := builtins[nameOrPath]
		if !ok {
			return nil, fmt.Errorf("unknown scene %q (available: %s)", nameOrPath, strings.Join(Names(), ", "))
		}
		s = build(logger)
	}

	s.Preprocess()
	logger.Printf("Loaded scene %s: %d objects, %d sampled lights", s.Name, s.Objects.Len(), s.Lights.Len())
	return s, nil
}
