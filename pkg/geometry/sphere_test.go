package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var forward = core.NewInterval(0.001, math.Inf(1))

func TestSphere_Hit_Roots(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name      string
		ray       core.Ray
		rayT      core.Interval
		shouldHit bool
		expectedT float64
		frontFace bool
	}{
		{"from outside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), forward, true, 4, true},
		{"unnormalized direction", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -2)), forward, true, 2, true},
		{"from inside", core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)), forward, true, 1, false},
		{"near root excluded", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewInterval(4.5, 10), true, 6, false},
		{"root on boundary excluded", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.NewInterval(4, 6), false, 0, false},
		{"miss", core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 0, -1)), forward, false, 0, false},
		{"behind", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), forward, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			hit := sphere.Hit(tt.ray, tt.rayT, &rec, nil)
			if hit != tt.shouldHit {
				t.Fatalf("hit = %v, want %v", hit, tt.shouldHit)
			}
			if !hit {
				return
			}
			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("t = %v, want %v", rec.T, tt.expectedT)
			}
			if rec.FrontFace != tt.frontFace {
				t.Errorf("front face = %v, want %v", rec.FrontFace, tt.frontFace)
			}
			if rec.Normal.Dot(tt.ray.Direction) > 0 {
				t.Error("normal does not oppose ray")
			}
			if math.Abs(rec.Normal.Length()-1) > 1e-9 {
				t.Errorf("normal not unit: %v", rec.Normal)
			}
		})
	}
}

func TestSphere_MissLeavesRecordUntouched(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, nil)
	rec := material.HitRecord{T: 42}
	sphere.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), forward, &rec, nil)
	if rec.T != 42 {
		t.Errorf("record modified on miss: %+v", rec)
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		p    core.Vec3
		want core.Vec2
	}{
		{core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1.0)},
		{core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0.0)},
		{core.NewVec3(-1, 0, 0), core.NewVec2(0.0, 0.5)},
		{core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
	}
	for _, tt := range tests {
		got := sphereUV(tt.p)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("sphereUV(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMovingSphere_CenterAtTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, -5), core.NewVec3(0, 2, -5), 0.5, nil)

	early := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	late := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 1)
	var rec material.HitRecord
	if !sphere.Hit(early, forward, &rec, nil) {
		t.Error("expected hit at time 0")
	}
	if sphere.Hit(late, forward, &rec, nil) {
		t.Error("expected miss at time 1")
	}

	box := sphere.BoundingBox()
	if box.Y.Min > -0.5 || box.Y.Max < 2.5 {
		t.Errorf("bounding box %v does not cover the motion", box.Y)
	}
}

func TestSphere_PDFMatchesSolidAngle(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -4), 1, nil)
	origin := core.Vec3{}
	cosMax := math.Sqrt(1 - 1.0/16.0)
	want := 1 / (2 * math.Pi * (1 - cosMax))

	if got := sphere.PDFValue(origin, core.NewVec3(0, 0, -1)); math.Abs(got-want) > 1e-9 {
		t.Errorf("PDFValue toward center = %v, want %v", got, want)
	}
	if got := sphere.PDFValue(origin, core.NewVec3(0, 1, 0)); got != 0 {
		t.Errorf("PDFValue away = %v, want 0", got)
	}

	sampler := core.NewSeededSampler(1)
	for i := 0; i < 500; i++ {
		d := sphere.Random(origin, sampler)
		if sphere.PDFValue(origin, d) <= 0 {
			t.Fatalf("sampled direction %v does not hit the sphere", d)
		}
	}
}
