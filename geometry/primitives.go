package geometry

import "github.com/sbrsim/sbrsim/types"

// Helper constructors for simple scene geometry that callers often need
// without a mesh file, e.g. a flat ground plate or a square corner
// reflector facet.

// NewPlate builds a rectangular plate of two triangles centered at center.
// uAxis and vAxis span the plate plane; the front face normal is
// uAxis × vAxis.
func NewPlate(center, uAxis, vAxis types.Vec3, width, height float64) *Mesh {
	u := uAxis.Normalize().Scale(width / 2)
	v := vAxis.Normalize().Scale(height / 2)
	p00 := center.Sub(u).Sub(v)
	p10 := center.Add(u).Sub(v)
	p11 := center.Add(u).Add(v)
	p01 := center.Sub(u).Add(v)
	return &Mesh{Triangles: []Triangle{
		{V0: p00, V1: p10, V2: p11},
		{V0: p00, V1: p11, V2: p01},
	}}
}

// NewGroundPlane builds a square plate in the XY plane at z=0 with the
// given half extent, facing +Z. The owning target's location places it at
// its world height.
func NewGroundPlane(halfExtent float64) *Mesh {
	return NewPlate(types.Vec3{}, types.Vec3{X: 1}, types.Vec3{Y: 1}, 2*halfExtent, 2*halfExtent)
}
