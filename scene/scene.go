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

package scene

import (
	"github.com/sbrsim/sbrsim/geometry"
	"github.com/sbrsim/sbrsim/logger"
	"github.com/sbrsim/sbrsim/types"
)

// Scene is a validated set of targets. Zero or one target may be flagged
// as ground; the tracer treats that one as an infinite reflecting plane.
type Scene struct {
	Targets []*Target // non-ground targets
	Ground  *Target   // nil when the scene has no ground plane
}

// New validates the target set and precomputes each target's local-frame
// spatial index. Since targets only translate between snapshots, the
// index is built once here and shared by every snapshot; conceptually it
// is still scoped to the snapshot that uses it.
func New(targets []*Target) (*Scene, error) {
	sc := &Scene{}
	for i, tgt := range targets {
		if tgt == nil || tgt.Mesh == nil {
			return nil, types.SceneConfigErrorf("target %d references no loaded mesh", i)
		}
		if err := tgt.Mesh.Validate(); err != nil {
			return nil, types.SceneConfigErrorf("target %d: %v", i, err)
		}
		if !tgt.Location.IsFinite() || !tgt.Velocity.IsFinite() {
			return nil, types.SceneConfigErrorf("target %d has non-finite motion state", i)
		}
		if tgt.IsGround {
			if sc.Ground != nil {
				return nil, types.SceneConfigErrorf("more than one target is flagged as ground")
			}
			sc.Ground = tgt
		} else {
			sc.Targets = append(sc.Targets, tgt)
		}
		tgt.index = geometry.NewBVH(tgt.Mesh)
	}
	if sc.Ground != nil {
		if _, err := sc.groundPlaneLocal(); err != nil {
			return nil, err
		}
	}
	logger.Debugf("scene: %d target(s), ground=%v", len(sc.Targets), sc.Ground != nil)
	return sc, nil
}

// groundPlaneLocal derives the plane of the ground mesh in its local
// frame, from the first non-degenerate triangle.
func (sc *Scene) groundPlaneLocal() (geometry.Triangle, error) {
	for i := range sc.Ground.Mesh.Triangles {
		tri := sc.Ground.Mesh.Triangles[i]
		if tri.Area() > 0 {
			return tri, nil
		}
	}
	return geometry.Triangle{}, types.SceneConfigErrorf("ground mesh has only degenerate triangles")
}

// SnapTarget is one non-ground target fixed at its snapshot position.
type SnapTarget struct {
	Target   *Target
	Position types.Vec3
}

// Intersect tests a world-frame ray against the target at its snapshot
// position and returns the nearest world-frame hit.
func (st *SnapTarget) Intersect(r geometry.Ray, tMin, tMax float64) (geometry.Hit, bool) {
	local := geometry.Ray{Origin: r.Origin.Sub(st.Position), Dir: r.Dir}
	hit, ok := st.Target.index.Intersect(local, tMin, tMax)
	if ok {
		hit.Point = hit.Point.Add(st.Position)
	}
	return hit, ok
}

// Occluded reports whether this target blocks the open segment between
// two world-frame points.
func (st *SnapTarget) Occluded(from, to types.Vec3) bool {
	return st.Target.index.Occluded(from.Sub(st.Position), to.Sub(st.Position))
}

// GroundPlane is the ground target reduced to an infinite plane for the
// deterministic image-reflection path computation.
type GroundPlane struct {
	Target *Target
	Point  types.Vec3 // a point on the plane, world frame
	Normal types.Vec3 // unit plane normal (winding side of the mesh)
}

// Mirror reflects a world-frame point across the plane.
func (g *GroundPlane) Mirror(p types.Vec3) types.Vec3 {
	d := p.Sub(g.Point).Dot(g.Normal)
	return p.Sub(g.Normal.Scale(2 * d))
}

// Height returns the signed distance of a point above the plane.
func (g *GroundPlane) Height(p types.Vec3) float64 {
	return p.Sub(g.Point).Dot(g.Normal)
}

// Snapshot is the scene frozen at one simulation time instant.
type Snapshot struct {
	Time    float64
	Targets []*SnapTarget
	Ground  *GroundPlane // nil when the scene has no ground
}

// SnapshotAt produces the scene state for time ts: every target advanced
// to location + velocity·ts.
func (sc *Scene) SnapshotAt(ts float64) *Snapshot {
	snap := &Snapshot{Time: ts}
	for _, tgt := range sc.Targets {
		snap.Targets = append(snap.Targets, &SnapTarget{Target: tgt, Position: tgt.PositionAt(ts)})
	}
	if sc.Ground != nil {
		tri, _ := sc.groundPlaneLocal() // validated in New
		snap.Ground = &GroundPlane{
			Target: sc.Ground,
			Point:  tri.Centroid().Add(sc.Ground.PositionAt(ts)),
			Normal: tri.Normal(),
		}
	}
	return snap
}

// Occluded reports whether any non-ground target blocks the open segment
// between two world-frame points.
func (s *Snapshot) Occluded(from, to types.Vec3) bool {
	for _, st := range s.Targets {
		if st.Occluded(from, to) {
			return true
		}
	}
	return false
}
