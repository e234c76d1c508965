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
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sbrsim/sbrsim/types"
)

const (
	binaryStlHeaderLen = 80
	binaryStlRecordLen = 50 // 12 float32 + uint16 attribute word
)

// LoadSTL reads a triangulated surface file (binary or ASCII STL) and
// returns a validated Mesh. Loading is a pure parse with no retries; the
// caller decides whether a failure aborts the whole scene.
func LoadSTL(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.GeometryErrorf("open mesh %q: %v", path, err)
	}
	defer f.Close()

	m, err := ParseSTL(f)
	if err != nil {
		return nil, errors.Wrapf(err, "mesh %q", path)
	}
	return m, nil
}

// ParseSTL parses STL data from a reader. The flavor is sniffed from the
// content: files starting with "solid" followed by a "facet" keyword are
// treated as ASCII, everything else as little-endian binary.
func ParseSTL(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.GeometryErrorf("read mesh: %v", err)
	}

	var m *Mesh
	if isAsciiStl(data) {
		m, err = parseAsciiStl(data)
	} else {
		m, err = parseBinaryStl(data)
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// isAsciiStl sniffs the STL flavor. Some binary exporters also start the
// 80-byte header with "solid", so the "facet" keyword must appear too.
func isAsciiStl(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("solid")) &&
		bytes.Contains(head, []byte("facet"))
}

func parseBinaryStl(data []byte) (*Mesh, error) {
	if len(data) < binaryStlHeaderLen+4 {
		return nil, types.GeometryErrorf("binary STL truncated: %d bytes", len(data))
	}
	n := binary.LittleEndian.Uint32(data[binaryStlHeaderLen:])
	want := binaryStlHeaderLen + 4 + int(n)*binaryStlRecordLen
	if len(data) < want {
		return nil, types.GeometryErrorf("binary STL truncated: %d triangles declared, %d bytes present",
			n, len(data))
	}

	m := &Mesh{Triangles: make([]Triangle, 0, n)}
	off := binaryStlHeaderLen + 4
	for i := 0; i < int(n); i++ {
		rec := data[off+i*binaryStlRecordLen:]
		// The stored facet normal is ignored; normals are derived from the
		// winding order so that the mesh is self-consistent.
		m.Triangles = append(m.Triangles, Triangle{
			V0: readVec3(rec[12:]),
			V1: readVec3(rec[24:]),
			V2: readVec3(rec[36:]),
		})
	}
	return m, nil
}

func readVec3(b []byte) types.Vec3 {
	return types.Vec3{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}

func parseAsciiStl(data []byte) (*Mesh, error) {
	m := &Mesh{}
	var verts []types.Vec3

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) != 4 {
				return nil, types.GeometryErrorf("ASCII STL line %d: malformed vertex", line)
			}
			var v [3]float64
			for i := 0; i < 3; i++ {
				x, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, types.GeometryErrorf("ASCII STL line %d: %v", line, err)
				}
				v[i] = x
			}
			verts = append(verts, types.Vec3{X: v[0], Y: v[1], Z: v[2]})
		case "endfacet":
			if len(verts) != 3 {
				return nil, types.GeometryErrorf("ASCII STL line %d: facet with %d vertices", line, len(verts))
			}
			m.Triangles = append(m.Triangles, Triangle{V0: verts[0], V1: verts[1], V2: verts[2]})
			verts = verts[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, types.GeometryErrorf("ASCII STL scan: %v", err)
	}
	if len(verts) != 0 {
		return nil, types.GeometryErrorf("ASCII STL: dangling vertices at end of file")
	}
	return m, nil
}
