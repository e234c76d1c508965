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

// Package tracer implements the shoot-and-bounce ray engine that turns a
// scene snapshot into a set of complex propagation paths per channel pair.
package tracer

import (
	"math"
	"math/cmplx"

	"github.com/sbrsim/sbrsim/types"
)

// Path is one resolved tx→scene→rx propagation path. Amplitude carries
// the full linear weighting of the path (antenna gains, reflection
// coefficients, spreading loss, captured facet area) but not the carrier
// phase; that is applied from Length when the path is evaluated at a
// wavelength.
type Path struct {
	Length    float64    // total geometric path length, m
	RangeRate float64    // dLength/dt from target motion, m/s
	Bounces   int        // reflections along the path, ground included
	Amplitude complex128 // linear voltage weighting, carrier phase excluded
}

// Delay returns the two-way propagation delay in seconds.
func (p Path) Delay() float64 {
	return p.Length / types.SpeedOfLight
}

// DelayAt returns the propagation delay dt seconds after the snapshot
// instant, with the path length advanced by its range rate.
func (p Path) DelayAt(dt float64) float64 {
	return (p.Length + p.RangeRate*dt) / types.SpeedOfLight
}

// Gain evaluates the path's complex gain at a carrier wavelength, with
// the same phase sign the waveform synthesizer applies through fc*tau.
func (p Path) Gain(wavelength float64) complex128 {
	phase := 2 * math.Pi * p.Length / wavelength
	return p.Amplitude * cmplx.Exp(complex(0, phase))
}

// PathSet collects all paths found for one (snapshot, tx, rx) unit.
type PathSet struct {
	Paths []Path
}

func (ps *PathSet) Add(p Path) {
	ps.Paths = append(ps.Paths, p)
}

func (ps PathSet) Len() int {
	return len(ps.Paths)
}

// CoherentGain sums the complex gain of every path at a wavelength.
func (ps PathSet) CoherentGain(wavelength float64) complex128 {
	var sum complex128
	for _, p := range ps.Paths {
		sum += p.Gain(wavelength)
	}
	return sum
}

// MinLength returns the shortest path length in the set, or +Inf when
// the set is empty.
func (ps PathSet) MinLength() float64 {
	min := math.Inf(1)
	for _, p := range ps.Paths {
		if p.Length < min {
			min = p.Length
		}
	}
	return min
}
