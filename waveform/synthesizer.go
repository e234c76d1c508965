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

package waveform

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/sbrsim/sbrsim/radar"
	"github.com/sbrsim/sbrsim/tracer"
	"github.com/sbrsim/sbrsim/types"
)

// Synthesizer turns path sets into dechirped baseband pulses for one
// radar configuration. It precomputes the linear amplitude chain once so
// per-sample work stays cheap. Safe for concurrent use.
type Synthesizer struct {
	cfg *radar.Config

	slope    float64 // chirp slope, Hz/s
	fc       float64
	txVolts  float64 // transmit voltage amplitude into the load
	chainAmp float64 // RF + baseband linear voltage gain
	sigma    float64 // per-component noise std dev after the chain, volts
}

// NewSynthesizer builds a synthesizer for a validated configuration.
func NewSynthesizer(cfg *radar.Config) *Synthesizer {
	chainAmp := types.DbToAmplitude(cfg.RfGainDb + cfg.BasebandGainDb)
	// Thermal noise power k*T0*fs*F over the sampled bandwidth, split
	// evenly between the I and Q components.
	noisePower := types.Boltzmann * types.T0Kelvin * cfg.SampleRate *
		types.DbToLinear(cfg.NoiseFigureDb)
	return &Synthesizer{
		cfg:      cfg,
		slope:    cfg.ChirpSlope(),
		fc:       cfg.CenterFrequency,
		txVolts:  math.Sqrt(cfg.TxPowerWatts() * cfg.LoadResistance),
		chainAmp: chainAmp,
		sigma:    math.Sqrt(noisePower*cfg.LoadResistance/2) * chainAmp,
	}
}

// NoiseSigma returns the per-component thermal noise standard deviation
// at the synthesizer output, in volts.
func (s *Synthesizer) NoiseSigma() float64 {
	return s.sigma
}

// Synthesize produces the dechirped [pulse][sample] block for one path
// set. Targets are modeled stop-and-hop: each path's delay is advanced
// by its range rate once per pulse and held within the pulse. An empty
// path set yields nil, so silent units never touch the output cube.
func (s *Synthesizer) Synthesize(paths *tracer.PathSet) [][]complex128 {
	if paths.Len() == 0 {
		return nil
	}
	pulses, samples := s.cfg.Pulses, s.cfg.SamplesPerPulse()
	amp := complex(s.txVolts*s.chainAmp, 0)
	block := make([][]complex128, pulses)
	for m := 0; m < pulses; m++ {
		row := make([]complex128, samples)
		for _, p := range paths.Paths {
			tau := p.DelayAt(float64(m) * s.cfg.PRI)
			// Dechirped phase: 2*pi*(fc*tau + slope*tau*t - slope*tau^2/2),
			// so a target at positive range beats at a positive frequency.
			base := 2 * math.Pi * (s.fc*tau - s.slope*tau*tau/2)
			stepPhase := 2 * math.Pi * s.slope * tau / s.cfg.SampleRate
			w := amp * p.Amplitude * cmplx.Exp(complex(0, base))
			rot := cmplx.Exp(complex(0, stepPhase))
			for k := 0; k < samples; k++ {
				row[k] += w
				w *= rot
			}
		}
		block[m] = row
	}
	return block
}

// AddNoise adds complex white Gaussian receiver noise to every sample of
// one (snapshot, rx) slot of a cube, using the caller's generator. The
// generator must be dedicated to this slot for reproducible runs.
func (s *Synthesizer) AddNoise(c *Cube, snap, rx int, rng *rand.Rand) {
	for m := 0; m < c.Pulses; m++ {
		row := c.Pulse(snap, rx, m)
		for k := range row {
			row[k] += complex(rng.NormFloat64()*s.sigma, rng.NormFloat64()*s.sigma)
		}
	}
}
