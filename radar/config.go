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

// Package radar holds the FMCW waveform and receiver-chain configuration.
package radar

import (
	"math"

	"github.com/sbrsim/sbrsim/types"
)

// Default radar parameters: a 24 GHz short-range FMCW profile.
const (
	DefaultCenterFrequency = 24.125e9 // Hz
	DefaultBandwidth       = 100e6    // Hz
	DefaultPulseDuration   = 80e-6    // s
	DefaultPRI             = 100e-6   // s
	DefaultPulses          = 1
	DefaultSampleRate      = 2e6  // samples/s
	DefaultTxPowerDbm      = 10.0 // dBm
	DefaultNoiseFigureDb   = 12.0
	DefaultRfGainDb        = 20.0
	DefaultBasebandGainDb  = 30.0
	DefaultLoadResistance  = 500.0 // ohm
)

// Config is the full radar configuration: chirp timing, power levels and
// the transmit/receive channel lists. Gains and powers are dB inputs and
// converted to linear exactly once, at synthesis time.
type Config struct {
	CenterFrequency float64 // chirp center frequency, Hz
	Bandwidth       float64 // swept bandwidth, Hz
	PulseDuration   float64 // chirp/pulse length, s
	PRI             float64 // pulse repetition interval, s
	Pulses          int     // number of pulses per frame
	SampleRate      float64 // baseband sample rate, samples/s

	TxPowerDbm     types.DbValue // transmit power per channel, dBm
	NoiseFigureDb  types.DbValue
	RfGainDb       types.DbValue
	BasebandGainDb types.DbValue
	LoadResistance float64 // receiver load, ohm

	TxChannels []Channel
	RxChannels []Channel
}

// DefaultConfig gets a config with default values, as a basis to
// configure further. It carries one co-located tx/rx channel pair at the
// origin with isotropic patterns.
func DefaultConfig() *Config {
	return &Config{
		CenterFrequency: DefaultCenterFrequency,
		Bandwidth:       DefaultBandwidth,
		PulseDuration:   DefaultPulseDuration,
		PRI:             DefaultPRI,
		Pulses:          DefaultPulses,
		SampleRate:      DefaultSampleRate,
		TxPowerDbm:      DefaultTxPowerDbm,
		NoiseFigureDb:   DefaultNoiseFigureDb,
		RfGainDb:        DefaultRfGainDb,
		BasebandGainDb:  DefaultBasebandGainDb,
		LoadResistance:  DefaultLoadResistance,
		TxChannels:      []Channel{{}},
		RxChannels:      []Channel{{}},
	}
}

// samplesPerPulseEps absorbs floating-point slack when checking that the
// sample rate yields an integer number of samples per pulse.
const samplesPerPulseEps = 1e-6

// Validate checks the configuration invariants. Violations are fatal at
// configuration time, before any tracing begins.
func (c *Config) Validate() error {
	if c.CenterFrequency <= 0 {
		return types.ConfigErrorf("center frequency must be positive, got %g", c.CenterFrequency)
	}
	if c.Bandwidth <= 0 {
		return types.ConfigErrorf("bandwidth must be positive, got %g", c.Bandwidth)
	}
	if c.PulseDuration <= 0 || c.PRI <= 0 {
		return types.ConfigErrorf("pulse duration and PRI must be positive")
	}
	if c.PulseDuration > c.PRI {
		return types.ConfigErrorf("pulse duration %g exceeds repetition interval %g", c.PulseDuration, c.PRI)
	}
	if c.Pulses < 1 {
		return types.ConfigErrorf("at least one pulse required, got %d", c.Pulses)
	}
	if c.SampleRate <= 0 {
		return types.ConfigErrorf("sample rate must be positive, got %g", c.SampleRate)
	}
	n := c.SampleRate * c.PulseDuration
	if math.Abs(n-math.Round(n)) > samplesPerPulseEps || math.Round(n) < 1 {
		return types.ConfigErrorf("sample rate %g yields %g samples per pulse, want a positive integer",
			c.SampleRate, n)
	}
	if c.LoadResistance <= 0 {
		return types.ConfigErrorf("load resistance must be positive, got %g", c.LoadResistance)
	}
	if len(c.TxChannels) == 0 || len(c.RxChannels) == 0 {
		return types.ConfigErrorf("need at least one transmit and one receive channel")
	}
	for i := range c.TxChannels {
		ch := &c.TxChannels[i]
		if !ch.Azimuth.valid() || !ch.Elevation.valid() {
			return types.ConfigErrorf("tx channel %d has an inconsistent gain pattern", i)
		}
	}
	for i := range c.RxChannels {
		ch := &c.RxChannels[i]
		if !ch.Azimuth.valid() || !ch.Elevation.valid() {
			return types.ConfigErrorf("rx channel %d has an inconsistent gain pattern", i)
		}
	}
	return nil
}

// SamplesPerPulse returns the fast-time sample count.
func (c *Config) SamplesPerPulse() int {
	return int(math.Round(c.SampleRate * c.PulseDuration))
}

// ChirpSlope returns the frequency sweep rate in Hz/s.
func (c *Config) ChirpSlope() float64 {
	return c.Bandwidth / c.PulseDuration
}

// Wavelength returns the carrier wavelength in meters.
func (c *Config) Wavelength() float64 {
	return types.Wavelength(c.CenterFrequency)
}

// RangeResolution returns c/(2B), the size of one range cell in meters.
func (c *Config) RangeResolution() float64 {
	return types.SpeedOfLight / (2 * c.Bandwidth)
}

// MaxUnambiguousRange returns the range mapped to the highest beat
// frequency the sample rate can represent.
func (c *Config) MaxUnambiguousRange() float64 {
	return c.SampleRate / 2 * types.SpeedOfLight / (2 * c.ChirpSlope())
}

// RangeBin returns the range in meters of FFT bin k for an n-point
// fast-time transform.
func (c *Config) RangeBin(k, n int) float64 {
	binHz := c.SampleRate / float64(n)
	return float64(k) * binHz * types.SpeedOfLight / (2 * c.ChirpSlope())
}

// TxPowerWatts returns the per-channel transmit power in watts.
func (c *Config) TxPowerWatts() float64 {
	return types.DbToLinear(c.TxPowerDbm) * 1e-3
}
