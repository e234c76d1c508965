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

package tracer

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReflectionPerfectConductor(t *testing.T) {
	for _, cosTheta := range []float64{0, 0.3, 0.7, 1} {
		assert.Equal(t, complex(-1, 0), Reflection(0, false, cosTheta))
	}
}

func TestReflectionNormalIncidence(t *testing.T) {
	// eps=4: (1-2)/(1+2) = -1/3
	g := Reflection(complex(4, 0), true, 1)
	assert.InDelta(t, -1.0/3.0, real(g), 1e-12)
	assert.InDelta(t, 0.0, imag(g), 1e-12)
}

func TestReflectionGrazingIncidence(t *testing.T) {
	g := Reflection(complex(3.2, 0.1), true, 0)
	assert.InDelta(t, -1.0, real(g), 1e-12)
	assert.InDelta(t, 0.0, imag(g), 1e-12)
}

func TestReflectionMagnitudeBounded(t *testing.T) {
	for cosTheta := 0.0; cosTheta <= 1.0; cosTheta += 0.05 {
		g := Reflection(complex(3.2, 0.1), true, cosTheta)
		assert.LessOrEqual(t, cmplx.Abs(g), 1.0+1e-12, "cosTheta=%v", cosTheta)
	}
}
