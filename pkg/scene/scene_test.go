package scene

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestNames(t *testing.T) {
	names := Names()
	want := []string{
		"bouncing-spheres", "checkered-spheres", "cornell-box", "cornell-smoke",
		"earth", "final-scene", "perlin-spheres", "quads", "simple-light",
	}
	if !slices.Equal(names, want) {
		t.Errorf("Names() = %v, want %v", names, want)
	}
	if !slices.Contains(names, DefaultSceneName) {
		t.Errorf("default scene %q is not registered", DefaultSceneName)
	}
}

func TestLoadBuiltins(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name, nil)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if s.Name != name {
				t.Errorf("scene name = %q, want %q", s.Name, name)
			}
			if s.Objects.Len() == 0 {
				t.Error("scene has no objects")
			}
			if s.GetWorld() == nil || s.GetCamera() == nil {
				t.Fatal("scene was not preprocessed")
			}
			if s.GetCamera().Width() != s.CameraConfig.ImageWidth {
				t.Errorf("camera width %d != config width %d", s.GetCamera().Width(), s.CameraConfig.ImageWidth)
			}
			cfg := s.GetSamplingConfig()
			if cfg.SamplesPerPixel <= 0 || cfg.MaxDepth <= 0 {
				t.Errorf("invalid sampling config %+v", cfg)
			}

			// Every built-in frames geometry at the center of the image
			ray := core.NewRay(s.CameraConfig.LookFrom, s.CameraConfig.LookAt.Subtract(s.CameraConfig.LookFrom))
			var rec material.HitRecord
			if !s.GetWorld().Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, core.NewSeededSampler(1)) {
				t.Fatal("center ray hit nothing")
			}
			if rec.T <= 0 || rec.Material == nil {
				t.Errorf("center hit has t=%v material=%v", rec.T, rec.Material)
			}
		})
	}
}

func TestBuiltinRenderSettings(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		spp, depth int
	}{
		{"bouncing-spheres", 400, 30, 10},
		{"checkered-spheres", 400, 30, 10},
		{"earth", 400, 30, 10},
		{"perlin-spheres", 400, 30, 10},
		{"quads", 400, 100, 50},
		{"simple-light", 400, 100, 50},
		{"cornell-box", 800, 1000, 250},
		{"cornell-smoke", 600, 50, 20},
		{"final-scene", 800, 1000, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := builtins[tt.name](core.NopLogger())
			cfg := s.GetSamplingConfig()
			if s.CameraConfig.ImageWidth != tt.width || cfg.SamplesPerPixel != tt.spp || cfg.MaxDepth != tt.depth {
				t.Errorf("width/spp/depth = %d/%d/%d, want %d/%d/%d",
					s.CameraConfig.ImageWidth, cfg.SamplesPerPixel, cfg.MaxDepth, tt.width, tt.spp, tt.depth)
			}
		})
	}
}

func TestLoadUnknownScene(t *testing.T) {
	_, err := Load("no-such-scene", nil)
	if err == nil {
		t.Fatal("expected an error for an unknown scene")
	}
	if !strings.Contains(err.Error(), "cornell-box") {
		t.Errorf("error should list available scenes: %v", err)
	}
}

func TestBuiltinsAreDeterministic(t *testing.T) {
	a := NewBouncingSpheres(nil)
	b := NewBouncingSpheres(nil)
	if a.Objects.Len() != b.Objects.Len() {
		t.Fatalf("object counts differ: %d vs %d", a.Objects.Len(), b.Objects.Len())
	}
	for i := range a.Objects.Objects {
		if a.Objects.Objects[i].BoundingBox() != b.Objects.Objects[i].BoundingBox() {
			t.Fatalf("object %d differs between builds", i)
		}
	}
}

func TestCornellBoxLights(t *testing.T) {
	s := NewCornellBox(nil)
	s.Preprocess()

	lights, ok := s.GetLights().(*geometry.List)
	if !ok || lights.Len() != 2 {
		t.Fatalf("cornell-box should importance sample the light and the glass sphere, got %v", s.GetLights())
	}

	// A point on the floor below the light sees it through the light list
	origin := core.NewVec3(278, 1, 278)
	if pdf := lights.PDFValue(origin, core.NewVec3(0, 1, 0)); pdf <= 0 {
		t.Errorf("light PDF straight up = %v, want > 0", pdf)
	}

	// Sampling-only shapes never carry an emitting material
	for _, obj := range lights.Objects {
		var rec material.HitRecord
		ray := core.NewRay(origin, obj.BoundingBox().Center().Subtract(origin))
		if obj.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, nil) {
			if _, isEmpty := rec.Material.(*material.Empty); !isEmpty {
				t.Errorf("light stand-in has material %T", rec.Material)
			}
		}
	}
}

func TestSceneWithoutLights(t *testing.T) {
	s := New("empty")
	if s.GetLights() != nil {
		t.Error("a scene with no sampled lights should return nil")
	}

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if s.GetWorld().Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, nil) {
		t.Error("empty world should never be hit")
	}
}

func TestAddQuadLight(t *testing.T) {
	s := New("lights")
	quad := s.AddQuadLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(4, 4, 4))
	sphere := s.AddSphereLight(core.NewVec3(0, 5, 0), 1, core.NewVec3(2, 2, 2))

	if s.Objects.Len() != 2 || s.Lights.Len() != 2 {
		t.Fatalf("objects=%d lights=%d, want 2 and 2", s.Objects.Len(), s.Lights.Len())
	}
	if s.Objects.Objects[0] != geometry.Hittable(quad) || s.Lights.Objects[1] != geometry.Hittable(sphere) {
		t.Error("light helpers should add the same primitive to both lists")
	}
	if s.GetPrimitiveCount() != 2 {
		t.Errorf("GetPrimitiveCount() = %d, want 2", s.GetPrimitiveCount())
	}
}
