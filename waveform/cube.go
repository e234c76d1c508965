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

// Package waveform synthesizes dechirped FMCW baseband samples from
// traced propagation paths.
package waveform

// Cube is the synthesized baseband output of a run, indexed by
// [snapshot][rx channel][pulse][fast-time sample]. Transmit channels
// share a receive slot; their contributions accumulate coherently. The
// backing store is one flat slice so snapshots copy and compare cheaply.
type Cube struct {
	Snapshots int
	RxCount   int
	Pulses    int
	Samples   int

	data []complex128
}

// NewCube allocates a zeroed cube with the given dimensions.
func NewCube(snapshots, rxCount, pulses, samples int) *Cube {
	return &Cube{
		Snapshots: snapshots,
		RxCount:   rxCount,
		Pulses:    pulses,
		Samples:   samples,
		data:      make([]complex128, snapshots*rxCount*pulses*samples),
	}
}

func (c *Cube) index(snap, rx, pulse int) int {
	return ((snap*c.RxCount+rx)*c.Pulses + pulse) * c.Samples
}

// Pulse returns the sample slice of one pulse, backed by the cube.
func (c *Cube) Pulse(snap, rx, pulse int) []complex128 {
	i := c.index(snap, rx, pulse)
	return c.data[i : i+c.Samples]
}

// At returns one sample.
func (c *Cube) At(snap, rx, pulse, sample int) complex128 {
	return c.data[c.index(snap, rx, pulse)+sample]
}

// Accumulate adds a [pulse][sample] block into one (snapshot, rx) slot.
// A nil block is a no-op.
func (c *Cube) Accumulate(snap, rx int, block [][]complex128) {
	for m, row := range block {
		dst := c.Pulse(snap, rx, m)
		for k, v := range row {
			dst[k] += v
		}
	}
}

// IsZero reports whether every sample is exactly zero.
func (c *Cube) IsZero() bool {
	for _, v := range c.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal reports exact sample-for-sample equality of two cubes.
func (c *Cube) Equal(o *Cube) bool {
	if c.Snapshots != o.Snapshots || c.RxCount != o.RxCount ||
		c.Pulses != o.Pulses || c.Samples != o.Samples {
		return false
	}
	for i, v := range c.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}
