package core

// minAABBWidth is the smallest extent any constructed box has along an axis
const minAABBWidth = 0.0001

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB contains nothing
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB contains everything
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates a box from three intervals, padding thin axes
func NewAABB(x, y, z Interval) AABB {
	box := AABB{X: x, Y: y, Z: z}
	box.padToMinimums()
	return box
}

// NewAABBFromPoints creates a box spanning two corners given in any order
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(min(a.X, b.X), max(a.X, b.X)),
		NewInterval(min(a.Y, b.Y), max(a.Y, b.Y)),
		NewInterval(min(a.Z, b.Z), max(a.Z, b.Z)),
	)
}

// Union returns the tightest box enclosing both boxes
func (box AABB) Union(other AABB) AABB {
	return AABB{
		X: box.X.Union(other.X),
		Y: box.Y.Union(other.Y),
		Z: box.Z.Union(other.Z),
	}
}

// AxisInterval returns the interval along axis n (0=x, 1=y, 2=z)
func (box AABB) AxisInterval(n int) Interval {
	switch n {
	case 1:
		return box.Y
	case 2:
		return box.Z
	default:
		return box.X
	}
}

// HitInterval runs the slab test and returns the parameter range
// in which the ray is inside the box, narrowed from rayT.
func (box AABB) HitInterval(ray Ray, rayT Interval) (Interval, bool) {
	for axis := 0; axis < 3; axis++ {
		ax := box.AxisInterval(axis)
		adinv := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (ax.Min - origin) * adinv
		t1 := (ax.Max - origin) * adinv

		if t0 < t1 {
			if t0 > rayT.Min {
				rayT.Min = t0
			}
			if t1 < rayT.Max {
				rayT.Max = t1
			}
		} else {
			if t1 > rayT.Min {
				rayT.Min = t1
			}
			if t0 < rayT.Max {
				rayT.Max = t0
			}
		}

		if rayT.Max <= rayT.Min {
			return rayT, false
		}
	}
	return rayT, true
}

// Hit tests if a ray intersects the box within rayT
func (box AABB) Hit(ray Ray, rayT Interval) bool {
	_, ok := box.HitInterval(ray, rayT)
	return ok
}

// LongestAxis returns the index of the widest axis.
// x and y win ties against z.
func (box AABB) LongestAxis() int {
	x, y, z := box.X.Size(), box.Y.Size(), box.Z.Size()
	if x > y {
		if x >= z {
			return 0
		}
		return 2
	}
	if y >= z {
		return 1
	}
	return 2
}

// Translate returns the box displaced by offset
func (box AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: box.X.Shift(offset.X),
		Y: box.Y.Shift(offset.Y),
		Z: box.Z.Shift(offset.Z),
	}
}

// Center returns the center point of the box
func (box AABB) Center() Vec3 {
	return NewVec3(
		(box.X.Min+box.X.Max)/2,
		(box.Y.Min+box.Y.Max)/2,
		(box.Z.Min+box.Z.Max)/2,
	)
}

// Min returns the minimum corner
func (box AABB) Min() Vec3 {
	return NewVec3(box.X.Min, box.Y.Min, box.Z.Min)
}

// Max returns the maximum corner
func (box AABB) Max() Vec3 {
	return NewVec3(box.X.Max, box.Y.Max, box.Z.Max)
}

func (box *AABB) padToMinimums() {
	if box.X.Size() < minAABBWidth {
		box.X = box.X.Expand(minAABBWidth)
	}
	if box.Y.Size() < minAABBWidth {
		box.Y = box.Y.Expand(minAABBWidth)
	}
	if box.Z.Size() < minAABBWidth {
		box.Z = box.Z.Expand(minAABBWidth)
	}
}
