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

import "math"

// DbValue is a value expressed in dB (or dBm, where noted in the field name).
type DbValue = float64

// Physical constants used throughout the simulation core. SI units.
const (
	SpeedOfLight = 299792458.0 // m/s
	Boltzmann    = 1.380649e-23
	T0Kelvin     = 290.0 // reference temperature for thermal noise
)

const UndefinedDbValue = math.MaxFloat64

// DbToLinear converts a power ratio in dB to a linear power ratio.
func DbToLinear(db DbValue) float64 {
	return math.Pow(10.0, db/10.0)
}

// LinearToDb converts a linear power ratio to dB. Zero input yields -Inf.
func LinearToDb(lin float64) DbValue {
	return 10.0 * math.Log10(lin)
}

// DbToAmplitude converts a gain in dB to a linear voltage/amplitude factor.
func DbToAmplitude(db DbValue) float64 {
	return math.Pow(10.0, db/20.0)
}

// Wavelength returns the free-space wavelength in meters for frequency f in Hz.
func Wavelength(f float64) float64 {
	return SpeedOfLight / f
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
