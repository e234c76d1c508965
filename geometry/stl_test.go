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
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbrsim/sbrsim/types"
)

// buildBinaryStl serializes triangles in the 80-byte-header binary layout.
func buildBinaryStl(tris []Triangle) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	for _, tri := range tris {
		n := tri.Normal()
		for _, v := range []types.Vec3{n, tri.V0, tri.V1, tri.V2} {
			_ = binary.Write(&buf, binary.LittleEndian, float32(v.X))
			_ = binary.Write(&buf, binary.LittleEndian, float32(v.Y))
			_ = binary.Write(&buf, binary.LittleEndian, float32(v.Z))
		}
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

func TestParseBinaryStl(t *testing.T) {
	tris := []Triangle{
		{V0: types.Vec3{}, V1: types.Vec3{X: 1}, V2: types.Vec3{Y: 1}},
		{V0: types.Vec3{Z: 2}, V1: types.Vec3{X: 1, Z: 2}, V2: types.Vec3{Y: 1, Z: 2}},
	}
	m, err := ParseSTL(bytes.NewReader(buildBinaryStl(tris)))
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())
	assert.InDelta(t, 0.5, m.Triangles[0].Area(), 1e-12)
	assert.InDelta(t, 2.0, m.Triangles[1].V0.Z, 1e-6)
}

func TestParseAsciiStl(t *testing.T) {
	src := `solid plate
  facet normal 0 0 1
    outer loop
      vertex 0.0 0.0 0.0
      vertex 1.0 0.0 0.0
      vertex 0.0 1.0 0.0
    endloop
  endfacet
endsolid plate
`
	m, err := ParseSTL(bytes.NewReader([]byte(src)))
	require.NoError(t, err)
	assert.Equal(t, 1, m.TriangleCount())
	assert.InDelta(t, 1.0, m.Triangles[0].Normal().Z, 1e-12)
}

func TestParseStlRejectsEmpty(t *testing.T) {
	// binary with zero triangles
	_, err := ParseSTL(bytes.NewReader(buildBinaryStl(nil)))
	assert.ErrorIs(t, err, types.ErrGeometry)

	// ASCII with no facets
	_, err = ParseSTL(bytes.NewReader([]byte("solid nothing facet\nendsolid\n")))
	assert.ErrorIs(t, err, types.ErrGeometry)
}

func TestParseStlRejectsTruncatedBinary(t *testing.T) {
	data := buildBinaryStl([]Triangle{{V0: types.Vec3{}, V1: types.Vec3{X: 1}, V2: types.Vec3{Y: 1}}})
	_, err := ParseSTL(bytes.NewReader(data[:len(data)-10]))
	assert.ErrorIs(t, err, types.ErrGeometry)
}

func TestParseStlRejectsMalformedAscii(t *testing.T) {
	src := `solid bad
  facet normal 0 0 1
    outer loop
      vertex 0.0 zero 0.0
      vertex 1.0 0.0 0.0
      vertex 0.0 1.0 0.0
    endloop
  endfacet
endsolid
`
	_, err := ParseSTL(bytes.NewReader([]byte(src)))
	assert.ErrorIs(t, err, types.ErrGeometry)
}

func TestParseStlRejectsNonFinite(t *testing.T) {
	tris := []Triangle{{V0: types.Vec3{X: math.Inf(1)}, V1: types.Vec3{X: 1}, V2: types.Vec3{Y: 1}}}
	_, err := ParseSTL(bytes.NewReader(buildBinaryStl(tris)))
	assert.ErrorIs(t, err, types.ErrGeometry)
}

func TestLoadSTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.stl")
	plate := NewPlate(types.Vec3{}, types.Vec3{X: 1}, types.Vec3{Y: 1}, 2, 2)
	require.NoError(t, os.WriteFile(path, buildBinaryStl(plate.Triangles), 0o644))

	m, err := LoadSTL(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())

	_, err = LoadSTL(filepath.Join(dir, "missing.stl"))
	assert.ErrorIs(t, err, types.ErrGeometry)
}
