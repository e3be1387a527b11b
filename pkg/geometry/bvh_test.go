package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockShape is a hittable with a fixed box and a configurable hit function
type MockShape struct {
	noLightSampling
	bbox  core.AABB
	hitFn func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool
	calls int
}

func (m *MockShape) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	m.calls++
	if m.hitFn == nil {
		return false
	}
	return m.hitFn(ray, rayT, rec)
}

func (m *MockShape) BoundingBox() core.AABB {
	return m.bbox
}

func randomScene(random *rand.Rand, n int) []Hittable {
	objects := make([]Hittable, 0, n)
	for i := 0; i < n; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		if i%3 == 0 {
			u := core.NewVec3(random.Float64()*2, random.Float64(), 0)
			v := core.NewVec3(0, random.Float64(), random.Float64()*2)
			objects = append(objects, NewQuad(center, u, v, nil))
		} else {
			objects = append(objects, NewSphere(center, 0.2+random.Float64(), nil))
		}
	}
	return objects
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(99))
	for _, n := range []int{1, 2, 3, 7, 64, 257} {
		objects := randomScene(random, n)
		bvh := NewBVH(objects)
		list := NewList(objects...)

		for i := 0; i < 2000; i++ {
			origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, random.Float64()*30-15)
			dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
			ray := core.NewRay(origin, dir)

			var got, want material.HitRecord
			gotHit := bvh.Hit(ray, forward, &got, nil)
			wantHit := list.Hit(ray, forward, &want, nil)

			if gotHit != wantHit {
				t.Fatalf("n=%d ray %d: bvh hit=%v, brute force=%v", n, i, gotHit, wantHit)
			}
			if gotHit && (math.Abs(got.T-want.T) > 1e-9 || got.Point.Subtract(want.Point).Length() > 1e-9) {
				t.Fatalf("n=%d ray %d: bvh t=%v, brute force t=%v", n, i, got.T, want.T)
			}
		}
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	objects := randomScene(rand.New(rand.NewSource(1)), 20)
	before := make([]Hittable, len(objects))
	copy(before, objects)
	NewBVH(objects)
	for i := range objects {
		if objects[i] != before[i] {
			t.Fatalf("input reordered at %d", i)
		}
	}
}

func TestBVH_Structure(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantNodes int
	}{
		{"single object", 1, 1},
		{"two objects", 2, 1},
		{"three objects", 3, 3},
		{"eight objects", 8, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := randomScene(rand.New(rand.NewSource(3)), tt.count)
			stats := NewBVH(objects).getStats()
			if stats.totalNodes != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", stats.totalNodes, tt.wantNodes)
			}
			if stats.leafObjects != tt.count {
				t.Errorf("leaf objects = %d, want %d", stats.leafObjects, tt.count)
			}
		})
	}
}

func TestBVH_BoundingBoxIsUnionOfChildren(t *testing.T) {
	objects := randomScene(rand.New(rand.NewSource(5)), 50)
	bvh := NewBVH(objects)
	want := NewList(objects...).BoundingBox()
	got := bvh.BoundingBox()
	if got.Min() != want.Min() || got.Max() != want.Max() {
		t.Errorf("bvh box %v..%v, want %v..%v", got.Min(), got.Max(), want.Min(), want.Max())
	}
}

func TestBVH_SingleObjectTestedOnce(t *testing.T) {
	shape := &MockShape{
		bbox: core.NewAABBFromPoints(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1)),
		hitFn: func(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
			rec.T = 1
			return true
		},
	}
	bvh := NewBVH([]Hittable{shape})
	var rec material.HitRecord
	if !bvh.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), forward, &rec, nil) {
		t.Fatal("expected hit")
	}
	if shape.calls != 1 {
		t.Errorf("shape tested %d times, want 1", shape.calls)
	}
}

func TestBVH_MissingRootBoxSkipsChildren(t *testing.T) {
	a := &MockShape{bbox: core.NewAABBFromPoints(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))}
	b := &MockShape{bbox: core.NewAABBFromPoints(core.NewVec3(2, -1, -1), core.NewVec3(3, 1, 1))}
	bvh := NewBVH([]Hittable{a, b})

	var rec material.HitRecord
	bvh.Hit(core.NewRay(core.NewVec3(0, 10, -5), core.NewVec3(0, 0, 1)), forward, &rec, nil)
	if a.calls != 0 || b.calls != 0 {
		t.Errorf("children tested %d and %d times, want 0", a.calls, b.calls)
	}

	bvh.Hit(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)), forward, &rec, nil)
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("children tested %d and %d times, want 1 each", a.calls, b.calls)
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	var rec material.HitRecord
	if bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), forward, &rec, nil) {
		t.Error("empty BVH reported a hit")
	}
}
