package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Every node has exactly two children; a node built over a single object
// references that object from both sides.
type BVHNode struct {
	noLightSampling
	Left        Hittable
	Right       Hittable
	boundingBox core.AABB
	single      bool // Left and Right are the same object
}

// NewBVH constructs a BVH over objects. The caller's slice is not reordered.
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{boundingBox: core.EmptyAABB}
	}

	// Copy so sorting does not disturb the caller's list
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, 0, len(objectsCopy))
}

// NewBVHFromList builds a BVH over the objects of a list
func NewBVHFromList(list *List) *BVHNode {
	return NewBVH(list.Objects)
}

// buildBVH recursively builds the hierarchy over objects[start:end] using a
// median split along the longest axis of the span's bounding box
func buildBVH(objects []Hittable, start, end int) *BVHNode {
	bbox := core.EmptyAABB
	for i := start; i < end; i++ {
		bbox = bbox.Union(objects[i].BoundingBox())
	}
	axis := bbox.LongestAxis()

	node := &BVHNode{}
	switch span := end - start; span {
	case 1:
		node.Left = objects[start]
		node.Right = objects[start]
		node.single = true
	case 2:
		node.Left = objects[start]
		node.Right = objects[start+1]
	default:
		sortByAxis(objects[start:end], axis)
		mid := start + span/2
		node.Left = buildBVH(objects, start, mid)
		node.Right = buildBVH(objects, mid, end)
	}

	node.boundingBox = node.Left.BoundingBox().Union(node.Right.BoundingBox())
	return node
}

// sortByAxis orders objects by the lower bound of their boxes along axis
func sortByAxis(objects []Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].BoundingBox().AxisInterval(axis).Min < objects[j].BoundingBox().AxisInterval(axis).Min
	})
}

// Hit tests the node's box, then the left child, then the right child
// restricted to hits closer than the left one
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if n.Left == nil || !n.boundingBox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.Left.Hit(ray, rayT, rec, sampler)
	if n.single {
		return hitLeft
	}

	closest := rayT.Max
	if hitLeft {
		closest = rec.T
	}
	hitRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, closest), rec, sampler)

	return hitLeft || hitRight
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.boundingBox
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafObjects int
	maxDepth    int
}

// getStats walks the hierarchy and collects structural statistics
func (n *BVHNode) getStats() bvhStats {
	stats := bvhStats{}
	if n.Left != nil {
		n.collectStats(0, &stats)
	}
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *bvhStats) {
	stats.totalNodes++
	stats.maxDepth = max(stats.maxDepth, depth)

	children := []Hittable{n.Left, n.Right}
	if n.single {
		children = children[:1]
	}
	for _, child := range children {
		if inner, ok := child.(*BVHNode); ok {
			inner.collectStats(depth+1, stats)
		} else {
			stats.leafObjects++
		}
	}
}
