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

package radar

import (
	"sort"

	"github.com/sbrsim/sbrsim/types"
)

// Pattern is a sampled angle→gain mapping, in degrees and dB. An empty
// pattern is isotropic (0 dB everywhere). Angles must be strictly
// increasing; gain between samples is linearly interpolated in dB and
// clamped to the end samples outside the sampled span.
type Pattern struct {
	AnglesDeg []float64
	GainsDb   []types.DbValue
}

// GainDb looks up the pattern gain at an angle in degrees.
func (p *Pattern) GainDb(angleDeg float64) types.DbValue {
	n := len(p.AnglesDeg)
	if n == 0 {
		return 0
	}
	if angleDeg <= p.AnglesDeg[0] {
		return p.GainsDb[0]
	}
	if angleDeg >= p.AnglesDeg[n-1] {
		return p.GainsDb[n-1]
	}
	i := sort.SearchFloat64s(p.AnglesDeg, angleDeg)
	a0, a1 := p.AnglesDeg[i-1], p.AnglesDeg[i]
	g0, g1 := p.GainsDb[i-1], p.GainsDb[i]
	return g0 + (g1-g0)*(angleDeg-a0)/(a1-a0)
}

// valid reports whether the pattern sample tables are consistent.
func (p *Pattern) valid() bool {
	if len(p.AnglesDeg) != len(p.GainsDb) {
		return false
	}
	for i := 1; i < len(p.AnglesDeg); i++ {
		if p.AnglesDeg[i] <= p.AnglesDeg[i-1] {
			return false
		}
	}
	return true
}

// Channel is one transmit or receive antenna channel: a world-frame
// location plus directional gain patterns. Ray contributions are weighted
// by the channel's response at the path's departure/arrival direction.
type Channel struct {
	Location  types.Vec3
	Azimuth   Pattern
	Elevation Pattern
}

// GainDb evaluates the channel's directional gain for a unit direction
// leaving (tx) or entering (rx) the antenna, as the sum of the azimuth
// and elevation pattern cuts.
func (c *Channel) GainDb(dir types.Vec3) types.DbValue {
	return c.Azimuth.GainDb(dir.Azimuth()) + c.Elevation.GainDb(dir.Elevation())
}

// GainAmplitude is the linear voltage weighting for a direction.
func (c *Channel) GainAmplitude(dir types.Vec3) float64 {
	return types.DbToAmplitude(c.GainDb(dir))
}
