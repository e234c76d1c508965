// Copyright (c) 2024-2026, The SBRSIM Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package geometry

import (
	"math"
	"sort"

	"github.com/sbrsim/sbrsim/logger"
	"github.com/sbrsim/sbrsim/types"
)

// degenerateAreaEps is the face area in m² below which a triangle is
// treated as degenerate and dropped from the spatial index.
const degenerateAreaEps = 1e-12

// leafSize is the maximum triangle count per BVH leaf.
const leafSize = 4

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max types.Vec3
}

// NewAABB returns a point-sized box at p.
func NewAABB(p types.Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// Extend grows the box to contain p.
func (b AABB) Extend(p types.Vec3) AABB {
	return AABB{
		Min: types.Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: types.Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return b.Extend(o.Min).Extend(o.Max)
}

// Center returns the box center point.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// BoundingSphere returns the center and radius of the enclosing sphere.
func (b AABB) BoundingSphere() (types.Vec3, float64) {
	c := b.Center()
	return c, c.DistanceTo(b.Max)
}

// hit runs the slab test against the (tMin, tMax) ray interval.
func (b AABB) hit(r Ray, tMin, tMax float64) bool {
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	min := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	max := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for a := 0; a < 3; a++ {
		invD := 1.0 / dir[a]
		t0 := (min[a] - origin[a]) * invD
		t1 := (max[a] - origin[a]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		// Strict comparison: a flat mesh has a zero-thickness box, where
		// the entry and exit parameters coincide.
		if tMax < tMin {
			return false
		}
	}
	return true
}

type bvhNode struct {
	bounds      AABB
	left, right int32 // child node indices, -1 for a leaf
	start, num  int32 // leaf range into BVH.order
}

// BVH is a bounding-volume hierarchy over one mesh, in the mesh's local
// frame. It is immutable after construction and safe for concurrent reads,
// so all parallel workers of a snapshot share a single index.
type BVH struct {
	mesh    *Mesh
	nodes   []bvhNode
	order   []int32 // triangle indices, grouped per leaf
	skipped int
}

// NewBVH builds the spatial index for a mesh. Degenerate (zero-area)
// triangles are skipped with a warning and never produce intersections.
func NewBVH(m *Mesh) *BVH {
	b := &BVH{mesh: m}
	for i := range m.Triangles {
		if m.Triangles[i].Area() < degenerateAreaEps {
			b.skipped++
			continue
		}
		b.order = append(b.order, int32(i))
	}
	if b.skipped > 0 {
		logger.Warnf("spatial index: skipped %d degenerate triangle(s) of %d", b.skipped, len(m.Triangles))
	}
	if len(b.order) > 0 {
		b.build(0, int32(len(b.order)))
	}
	return b
}

// Mesh returns the indexed mesh.
func (b *BVH) Mesh() *Mesh {
	return b.mesh
}

// SkippedTriangles returns how many degenerate triangles were dropped.
func (b *BVH) SkippedTriangles() int {
	return b.skipped
}

// triBounds returns the bounding box of one triangle.
func (b *BVH) triBounds(ti int32) AABB {
	tri := &b.mesh.Triangles[ti]
	return NewAABB(tri.V0).Extend(tri.V1).Extend(tri.V2)
}

// build constructs the subtree over order[start:end) and returns its index.
func (b *BVH) build(start, end int32) int32 {
	bounds := b.triBounds(b.order[start])
	centroids := NewAABB(b.mesh.Triangles[b.order[start]].Centroid())
	for i := start + 1; i < end; i++ {
		bounds = bounds.Union(b.triBounds(b.order[i]))
		centroids = centroids.Extend(b.mesh.Triangles[b.order[i]].Centroid())
	}

	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{bounds: bounds, left: -1, right: -1})

	if end-start <= leafSize {
		b.nodes[idx].start = start
		b.nodes[idx].num = end - start
		return idx
	}

	// split at the centroid median along the longest axis
	ext := centroids.Max.Sub(centroids.Min)
	axis := 0
	if ext.Y > ext.X {
		axis = 1
	}
	if ext.Z > ext.X && ext.Z > ext.Y {
		axis = 2
	}
	seg := b.order[start:end]
	sort.Slice(seg, func(i, j int) bool {
		ci := b.mesh.Triangles[seg[i]].Centroid()
		cj := b.mesh.Triangles[seg[j]].Centroid()
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})
	mid := start + (end-start)/2

	left := b.build(start, mid)
	right := b.build(mid, end)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

// Intersect returns the nearest hit along the ray within (tMin, tMax).
func (b *BVH) Intersect(r Ray, tMin, tMax float64) (Hit, bool) {
	var best Hit
	found := false
	if len(b.nodes) == 0 {
		return best, false
	}

	stack := make([]int32, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		ni := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[ni]
		if !node.bounds.hit(r, tMin, tMax) {
			continue
		}
		if node.left < 0 { // leaf
			for i := node.start; i < node.start+node.num; i++ {
				ti := b.order[i]
				tri := &b.mesh.Triangles[ti]
				if t, ok := intersectTriangle(tri, r, tMin, tMax); ok {
					tMax = t
					best.T = t
					best.Point = r.At(t)
					best.Triangle = int(ti)
					best.setFaceNormal(r, tri.Normal())
					found = true
				}
			}
			continue
		}
		stack = append(stack, node.left, node.right)
	}
	return best, found
}

// Occluded reports whether the open segment between two points is blocked
// by the indexed mesh.
func (b *BVH) Occluded(from, to types.Vec3) bool {
	d := to.Sub(from)
	dist := d.Length()
	if dist < intersectEpsilon {
		return false
	}
	ray := Ray{Origin: from, Dir: d.Scale(1.0 / dist)}
	_, hit := b.Intersect(ray, intersectEpsilon, dist-intersectEpsilon)
	return hit
}
