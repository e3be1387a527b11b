package scene

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

func TestPreprocessScript(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"keyword", `(camera :vfov 40)`, `(camera "__kw_vfov" 40)`},
		{"hyphenated keyword", `(camera :look-from p)`, `(camera "__kw_look-from" p)`},
		{"kebab-case call", `(rotate-y obj 15)`, `(rotate_y obj 15)`},
		{"negative number", `(vec3 -130 0 -1.5)`, `(vec3 -130 0 -1.5)`},
		{"minus operator", `(- 10 5)`, `(- 10 5)`},
		{"exponent", `(noise 1e-3)`, `(noise 1e-3)`},
		{"string untouched", `(image "maps/earth-map.jpg :x")`, `(image "maps/earth-map.jpg :x")`},
		{"escaped quote", `"a \" :b"`, `"a \" :b"`},
		{"comment", `;; diffuse-light :x`, `// diffuse-light :x`},
		{"comment after code", `(add x) ; done`, `(add x) // done`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessScript(tt.input); got != tt.expect {
				t.Errorf("preprocessScript(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

const testScript = `
;; two spheres under a quad light
(def ground (lambertian (checker 10 (color 0.2 0.3 0.1) (color 0.9 0.9 0.9))))
(def lamp (diffuse-light (color 4 4 4)))
(def panel (quad (vec3 -1 5 -1) (vec3 2 0 0) (vec3 0 0 2) lamp))

(add (sphere (vec3 0 -100 0) 100 ground)
     (sphere (vec3 0 1 0) 1 (dielectric 1.5))
     panel)
(light panel)

(add (group (box (vec3 2 0 2) (vec3 3 1 3) (metal (color 0.8 0.8 0.8) 0.1))
            (translate (rotate-y (box (vec3 0 0 0) (vec3 1 1 1) (lambertian (noise 2))) 30) (vec3 -3 0 0))))
(add (constant-medium (sphere (vec3 0 1 -4) 1 (empty-material)) 0.5 (color 1 1 1)))
(add (bvh (moving-sphere (vec3 4 1 0) (vec3 4 2 0) 0.5 (isotropic (solid (color 0.5 0.5 0.5))))))

(camera :look-from (vec3 0 2 10) :look-at (vec3 0 1 0) :vfov 30 :aspect 2 :width 64 :defocus-angle 0.5 :focus-dist 9)
(render :spp 16 :depth 12 :seed 99)
(background (color 0.1 0.2 0.3))
`

func TestEvaluateScript(t *testing.T) {
	s, err := EvaluateScript("test", testScript, nil)
	if err != nil {
		t.Fatalf("EvaluateScript: %v", err)
	}

	if s.Name != "test" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Objects.Len() != 6 {
		t.Errorf("Objects.Len() = %d, want 6", s.Objects.Len())
	}
	if s.Lights.Len() != 1 {
		t.Errorf("Lights.Len() = %d, want 1", s.Lights.Len())
	}
	if s.Objects.Objects[2] != s.Lights.Objects[0] {
		t.Error("the panel should be the same object in the world and the light list")
	}
	if _, ok := s.Objects.Objects[3].(*geometry.List); !ok {
		t.Errorf("group produced %T, want *geometry.List", s.Objects.Objects[3])
	}

	cam := s.CameraConfig
	if cam.LookFrom != core.NewVec3(0, 2, 10) || cam.LookAt != core.NewVec3(0, 1, 0) {
		t.Errorf("camera position not applied: %+v", cam)
	}
	if cam.VFov != 30 || cam.AspectRatio != 2 || cam.ImageWidth != 64 || cam.DefocusAngle != 0.5 || cam.FocusDist != 9 {
		t.Errorf("camera settings not applied: %+v", cam)
	}

	sampling := s.SamplingConfig
	if sampling.SamplesPerPixel != 16 || sampling.MaxDepth != 12 || sampling.Seed != 99 {
		t.Errorf("render settings not applied: %+v", sampling)
	}
	if s.Background != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Background = %v", s.Background)
	}

	s.Preprocess()
	if s.GetCamera().Height() != 32 {
		t.Errorf("camera height = %d, want 32", s.GetCamera().Height())
	}
}

func TestEvaluateScriptEmpty(t *testing.T) {
	s, err := EvaluateScript("empty", "  \n ;; nothing here\n", nil)
	if err != nil {
		t.Fatalf("EvaluateScript: %v", err)
	}
	if s.Objects.Len() != 0 {
		t.Errorf("empty script produced %d objects", s.Objects.Len())
	}
}

func TestEvaluateScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"wrong argument type", `(sphere (vec3 0 0 0) "big" (dielectric 1.5))`, "expected number"},
		{"wrong argument count", `(vec3 1 2)`, "vec3 requires 3 arguments"},
		{"material expected", `(quad (vec3 0 0 0) (vec3 1 0 0) (vec3 0 1 0) (color 1 1 1))`, "expected material"},
		{"unknown camera keyword", `(camera :zoom 2)`, "unknown keyword"},
		{"non-integer spp", `(render :spp 1.5)`, "expected integer"},
		{"adding a color", `(add (color 1 1 1))`, "expected object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvaluateScript("bad", tt.source, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			var scriptErr *ScriptError
			if !errors.As(err, &scriptErr) {
				t.Fatalf("error %T is not a *ScriptError", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.message)
			}
		})
	}
}

func TestEvaluateScriptSyntaxError(t *testing.T) {
	_, err := EvaluateScript("bad", "(add\n(sphere (vec3 0 0 0) 1", nil)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("expected *ScriptError, got %v", err)
	}
	if scriptErr.Message == "" {
		t.Error("script error has no message")
	}
}

const spinScript = `(for [(def i 0) true (set i (+ i 1))] (vec3 i i i))`

func TestEvaluateScriptTimeout(t *testing.T) {
	saved := ScriptTimeout
	ScriptTimeout = 50 * time.Millisecond
	t.Cleanup(func() { ScriptTimeout = saved })

	_, err := EvaluateScript("spin", spinScript, nil)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) || !strings.Contains(scriptErr.Message, "timed out") {
		t.Fatalf("expected a timeout ScriptError, got %v", err)
	}
}

func TestEvaluateScriptStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := evaluateScript(ctx, "spin", spinScript, core.NopLogger())
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("stopped evaluation returned %v, want deadline exceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("interpreter kept running after its context was done")
	}
}

func TestParseScriptError(t *testing.T) {
	err := parseScriptError(errors.New("Error on line 7: unexpected token\nstack trace follows"))
	if err.Line != 7 || err.Message != "unexpected token" {
		t.Errorf("got %+v", err)
	}
	if err.Error() != "line 7: unexpected token" {
		t.Errorf("Error() = %q", err.Error())
	}

	plain := parseScriptError(errors.New("something broke"))
	if plain.Line != 0 || plain.Error() != "something broke" {
		t.Errorf("got %+v", plain)
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.zy")
	if err := os.WriteFile(path, []byte(testScript), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if s.Name != "studio" {
		t.Errorf("Name = %q, want studio", s.Name)
	}
	if s.GetWorld() == nil {
		t.Error("script scene was not preprocessed")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.zy"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing script error = %v, want not-exist", err)
	}
}

func TestExampleScripts(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*"+ScriptExtension))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example scripts found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScriptFile(path, nil)
			if err != nil {
				t.Fatalf("LoadScriptFile: %v", err)
			}
			if s.Objects.Len() == 0 {
				t.Error("script produced no objects")
			}
		})
	}
}
