package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCheckerTexture_Parity(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	tex := NewCheckerColors(1, even, odd)

	tests := []struct {
		point core.Vec3
		want  core.Vec3
	}{
		{core.NewVec3(0.5, 0.5, 0.5), even},
		{core.NewVec3(1.5, 0.5, 0.5), odd},
		{core.NewVec3(-0.5, 0.5, 0.5), odd},
		{core.NewVec3(-0.5, -0.5, 0.5), even},
	}
	for _, tt := range tests {
		if got := tex.Evaluate(core.Vec2{}, tt.point); got != tt.want {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestImageTexture_Sampling(t *testing.T) {
	// 2x2 image: top row red, green; bottom row blue, white
	red, green := core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)
	blue, white := core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1)
	tex := NewImageTexture(2, 2, []core.Vec3{red, green, blue, white})

	tests := []struct {
		name string
		uv   core.Vec2
		want core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), blue},
		{"top left", core.NewVec2(0.1, 0.9), red},
		{"top right", core.NewVec2(0.9, 0.9), green},
		{"clamped beyond", core.NewVec2(5, -5), white},
		{"exact corner", core.NewVec2(1, 1), green},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Evaluate(tt.uv, core.Vec3{}); got != tt.want {
				t.Errorf("Evaluate(%v) = %v, want %v", tt.uv, got, tt.want)
			}
		})
	}
}

func TestImageTexture_Fallbacks(t *testing.T) {
	if got := NewMissingImageTexture().Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("missing image = %v, want cyan", got)
	}
	short := NewImageTexture(2, 2, []core.Vec3{{}})
	if got := short.Evaluate(core.NewVec2(0.9, 0.1), core.Vec3{}); got != core.NewVec3(1, 0, 1) {
		t.Errorf("missing pixel = %v, want magenta", got)
	}
}

func TestNoiseTexture_RangeAndDeterminism(t *testing.T) {
	a := NewNoiseTexture(4, newTestSampler(10))
	b := NewNoiseTexture(4, newTestSampler(10))
	sampler := newTestSampler(11)

	for i := 0; i < 500; i++ {
		p := sampler.Get3D().Multiply(20)
		ca := a.Evaluate(core.Vec2{}, p)
		if ca.X < 0 || ca.X > 1 || ca.X != ca.Y || ca.Y != ca.Z {
			t.Fatalf("noise color %v out of range at %v", ca, p)
		}
		if cb := b.Evaluate(core.Vec2{}, p); cb != ca {
			t.Fatalf("same seed produced %v and %v", ca, cb)
		}
	}
}

func TestPerlin_ZeroAtLatticePoints(t *testing.T) {
	p := NewPerlin(newTestSampler(5))
	for _, pt := range []core.Vec3{{}, core.NewVec3(1, 2, 3), core.NewVec3(-4, 0, 7)} {
		if n := p.Noise(pt); math.Abs(n) > 1e-12 {
			t.Errorf("Noise(%v) = %v, want 0", pt, n)
		}
	}
}
