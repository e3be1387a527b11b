package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestONB_IsOrthonormal(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0.95, 0.1, 0.1),
		NewVec3(-3, 2, 7),
	}
	const tolerance = 1e-9
	for _, n := range normals {
		b := NewONB(n)
		for _, axis := range []Vec3{b.U, b.V, b.W} {
			if math.Abs(axis.Length()-1) > tolerance {
				t.Errorf("basis for %v has non-unit axis %v", n, axis)
			}
		}
		if math.Abs(b.U.Dot(b.V)) > tolerance || math.Abs(b.V.Dot(b.W)) > tolerance || math.Abs(b.U.Dot(b.W)) > tolerance {
			t.Errorf("basis for %v not orthogonal: %+v", n, b)
		}
		if b.W.Subtract(n.Normalize()).Length() > tolerance {
			t.Errorf("W = %v, want %v", b.W, n.Normalize())
		}
		if got := b.Transform(NewVec3(0, 0, 1)); got.Subtract(b.W).Length() > tolerance {
			t.Errorf("Transform(z) = %v, want %v", got, b.W)
		}
	}
}

func TestRandomCosineDirection_UpperHemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	var sumZ float64
	const n = 20000
	for i := 0; i < n; i++ {
		d := RandomCosineDirection(sampler.Get2D())
		if d.Z < 0 {
			t.Fatalf("direction below hemisphere: %v", d)
		}
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("direction not unit: %v", d)
		}
		sumZ += d.Z
	}
	// E[cos θ] under a cosine-weighted distribution is 2/3
	if mean := sumZ / n; math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("mean cos = %v, want ~0.667", mean)
	}
}

func TestRandomToSphere_StaysInCone(t *testing.T) {
	sampler := NewSeededSampler(3)
	radius, dist := 1.0, 4.0
	cosMax := math.Sqrt(1 - radius*radius/(dist*dist))
	for i := 0; i < 1000; i++ {
		d := RandomToSphere(radius, dist*dist, sampler.Get2D())
		if d.Z < cosMax-1e-12 {
			t.Fatalf("direction %v outside cone cos=%v", d, cosMax)
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(11)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.LengthSquared() > 1+1e-12 || p.Z != 0 {
			t.Fatalf("point outside disk: %v", p)
		}
	}
}

func TestSamplePointInUnitSphere_UniformVolume(t *testing.T) {
	sampler := NewSeededSampler(13)
	const n = 20000
	var sumCubed float64
	for i := 0; i < n; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		r := p.Length()
		if r > 1+1e-12 {
			t.Fatalf("point outside sphere: %v", p)
		}
		sumCubed += r * r * r
	}
	// |p|^3 is uniform on [0, 1] for a uniform point in the ball
	if mean := sumCubed / n; math.Abs(mean-0.5) > 0.02 {
		t.Errorf("mean |p|^3 = %v, want ~0.5", mean)
	}
}

func TestRandomInt_Range(t *testing.T) {
	sampler := NewSeededSampler(5)
	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		counts[RandomInt(sampler, 4)]++
	}
	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("bucket %d count %d not near 1000", i, c)
		}
	}
}
