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

// Package geometry provides triangulated surface meshes in the target's
// local frame, an STL load contract, and ray intersection acceleration.
package geometry

import (
	"github.com/sbrsim/sbrsim/types"
)

// Triangle is a single face with three vertex positions, in meters.
// Winding is counter-clockwise when viewed from the front side.
type Triangle struct {
	V0, V1, V2 types.Vec3
}

// Normal returns the unit face normal derived from the winding order, or
// the zero vector for a degenerate triangle.
func (t *Triangle) Normal() types.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

// Area returns the face area in m².
func (t *Triangle) Area() float64 {
	return 0.5 * t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Length()
}

// Centroid returns the face centroid.
func (t *Triangle) Centroid() types.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// Mesh is an ordered sequence of triangles describing one target surface.
// A Mesh is immutable once loaded; a Target references it and never copies
// it, so snapshots of a moving target share the same triangle storage.
type Mesh struct {
	Triangles []Triangle

	// Permittivity optionally holds one complex relative permittivity per
	// triangle. nil means the mesh has no per-face material and inherits
	// the owning target's permittivity (or perfect-conductor reflection).
	Permittivity []complex128
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Validate checks the mesh load contract: at least one triangle, all
// coordinates finite, and a per-face material table (when present) sized
// to the triangle list. Violations are reported as a geometry error.
func (m *Mesh) Validate() error {
	if m.IsEmpty() {
		return types.GeometryErrorf("mesh has zero triangles")
	}
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		if !tri.V0.IsFinite() || !tri.V1.IsFinite() || !tri.V2.IsFinite() {
			return types.GeometryErrorf("triangle %d has non-finite coordinates", i)
		}
	}
	if m.Permittivity != nil && len(m.Permittivity) != len(m.Triangles) {
		return types.GeometryErrorf("per-face permittivity table has %d entries for %d triangles",
			len(m.Permittivity), len(m.Triangles))
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// Must not be called on an empty mesh.
func (m *Mesh) Bounds() AABB {
	b := NewAABB(m.Triangles[0].V0)
	for i := range m.Triangles {
		tri := &m.Triangles[i]
		b = b.Extend(tri.V0).Extend(tri.V1).Extend(tri.V2)
	}
	return b
}
