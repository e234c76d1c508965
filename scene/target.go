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

// Package scene assembles loaded geometry into per-time-instant snapshots
// that the ray tracer consumes.
package scene

import (
	"github.com/sbrsim/sbrsim/geometry"
	"github.com/sbrsim/sbrsim/types"
)

// Target is one object in the scene: a mesh reference plus its motion
// state. Immutable after construction; positions for a given time instant
// come from PositionAt, the stored Location never changes.
type Target struct {
	Mesh     *geometry.Mesh
	Location types.Vec3 // position at t=0, meters
	Velocity types.Vec3 // constant over the simulated interval, m/s

	// Permittivity is the complex relative permittivity of the target
	// surface. Only meaningful when HasPermittivity is set; absent
	// permittivity means perfect-conductor reflection.
	Permittivity    complex128
	HasPermittivity bool

	// IsGround marks the mesh as the ground plane for multipath
	// computation. At most one target per scene may set it.
	IsGround bool

	index *geometry.BVH // local-frame spatial index, built by New
}

// PositionAt returns the target origin at simulation time ts (seconds).
func (t *Target) PositionAt(ts float64) types.Vec3 {
	return t.Location.Add(t.Velocity.Scale(ts))
}

// SurfacePermittivity resolves the permittivity for one triangle: a
// per-face material wins over the target-level value. The second return
// is false for perfect-conductor reflection.
func (t *Target) SurfacePermittivity(tri int) (complex128, bool) {
	if t.Mesh.Permittivity != nil && tri >= 0 && tri < len(t.Mesh.Permittivity) {
		return t.Mesh.Permittivity[tri], true
	}
	return t.Permittivity, t.HasPermittivity
}
