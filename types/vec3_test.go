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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	assert.Equal(t, Vec3{5, -3, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, 7, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, Vec3{27, 6, -13}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(14), a.Length(), 1e-12)
	assert.InDelta(t, 1.0, a.Normalize().Length(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3Reflect(t *testing.T) {
	// reflecting a downward ray off the z=0 plane flips only Z
	v := Vec3{1, 0, -1}.Normalize()
	r := v.Reflect(Vec3{0, 0, 1})
	assert.InDelta(t, v.X, r.X, 1e-12)
	assert.InDelta(t, -v.Z, r.Z, 1e-12)
}

func TestVec3Angles(t *testing.T) {
	assert.InDelta(t, 0.0, Vec3{1, 0, 0}.Azimuth(), 1e-12)
	assert.InDelta(t, 90.0, Vec3{0, 1, 0}.Azimuth(), 1e-12)
	assert.InDelta(t, 90.0, Vec3{0, 0, 1}.Elevation(), 1e-12)
	assert.InDelta(t, -45.0, Vec3{1, 0, -1}.Elevation(), 1e-9)
}

func TestVec3IsFinite(t *testing.T) {
	assert.True(t, Vec3{1, 2, 3}.IsFinite())
	assert.False(t, Vec3{math.NaN(), 0, 0}.IsFinite())
	assert.False(t, Vec3{0, math.Inf(1), 0}.IsFinite())
}

func TestDbConversions(t *testing.T) {
	assert.InDelta(t, 100.0, DbToLinear(20), 1e-9)
	assert.InDelta(t, 10.0, DbToAmplitude(20), 1e-9)
	assert.InDelta(t, 30.0, LinearToDb(1000), 1e-9)
	assert.InDelta(t, SpeedOfLight/24.125e9, Wavelength(24.125e9), 1e-15)
}
