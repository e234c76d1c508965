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

import "github.com/sbrsim/sbrsim/types"

// intersectEpsilon guards against self-intersection of reflected rays with
// the surface they just left.
const intersectEpsilon = 1e-9

// Ray is a half-line with unit direction.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) types.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Hit contains information about a ray-triangle intersection.
type Hit struct {
	Point     types.Vec3
	Normal    types.Vec3 // unit normal, oriented against the ray direction
	T         float64    // parameter t along the ray (= distance for unit Dir)
	FrontFace bool       // whether the ray hit the front (winding) side
	Triangle  int        // index into the mesh's triangle list
}

// setFaceNormal orients the stored normal against the incoming ray and
// records which face was hit.
func (h *Hit) setFaceNormal(r Ray, outward types.Vec3) {
	h.FrontFace = r.Dir.Dot(outward) < 0
	if h.FrontFace {
		h.Normal = outward
	} else {
		h.Normal = outward.Scale(-1)
	}
}

// intersectTriangle runs the Möller–Trumbore test and returns the ray
// parameter of the intersection in (tMin, tMax), if any.
func intersectTriangle(tri *Triangle, r Ray, tMin, tMax float64) (float64, bool) {
	e1 := tri.V1.Sub(tri.V0)
	e2 := tri.V2.Sub(tri.V0)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return 0, false // ray parallel to the triangle plane
	}
	invDet := 1.0 / det
	s := r.Origin.Sub(tri.V0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * invDet
	if t <= tMin || t >= tMax {
		return 0, false
	}
	return t, true
}
