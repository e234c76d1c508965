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

// Package dsp turns synthesized baseband pulses into range profiles and
// range-Doppler maps.
package dsp

import (
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/sbrsim/sbrsim/types"
)

// Window selects the taper applied before a transform.
type Window int

const (
	WindowRect Window = iota
	WindowHamming
	WindowHann
	WindowBlackman
)

// Coefficients returns the n taper samples for the window, or nil for
// the rectangular window.
func (w Window) Coefficients(n int) []float64 {
	switch w {
	case WindowHamming:
		return window.Hamming(n)
	case WindowHann:
		return window.Hann(n)
	case WindowBlackman:
		return window.Blackman(n)
	default:
		return nil
	}
}

// taper applies window coefficients to a copy of x, zero-padded or
// truncated to length n.
func taper(x []complex128, w Window, n int) []complex128 {
	if n <= 0 {
		n = len(x)
	}
	out := make([]complex128, n)
	m := len(x)
	if m > n {
		m = n
	}
	copy(out, x[:m])
	if coeff := w.Coefficients(m); coeff != nil {
		for i := 0; i < m; i++ {
			out[i] *= complex(coeff[i], 0)
		}
	}
	return out
}

// RangeProfile computes the fast-time spectrum of one pulse: taper,
// zero-pad to nfft and transform. Bin k corresponds to the range
// radar.Config.RangeBin(k, nfft). nfft <= 0 uses the pulse length.
func RangeProfile(pulse []complex128, w Window, nfft int) []complex128 {
	return fft.FFT(taper(pulse, w, nfft))
}

// FFTShift rotates a spectrum so the zero-frequency bin sits at the
// center, matching the usual Doppler display convention.
func FFTShift(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for i := range x {
		out[i] = x[(i+(n+1)/2)%n]
	}
	return out
}

// RangeDoppler computes the range-Doppler map of one coherent pulse
// train, given as [pulse][sample]. The result is [doppler][range]. With
// fftShift set the Doppler axis is rotated so zero velocity maps to row
// nDoppler/2 and closing targets appear below the center row; without
// it zero velocity stays at row 0. Non-positive FFT sizes default to
// the corresponding input dimension.
func RangeDoppler(pulses [][]complex128, rangeWin, dopplerWin Window, nRange, nDoppler int, fftShift bool) [][]complex128 {
	m := len(pulses)
	if m == 0 {
		return nil
	}
	if nRange <= 0 {
		nRange = len(pulses[0])
	}
	if nDoppler <= 0 {
		nDoppler = m
	}

	profiles := make([][]complex128, m)
	for i, p := range pulses {
		profiles[i] = RangeProfile(p, rangeWin, nRange)
	}

	out := make([][]complex128, nDoppler)
	for i := range out {
		out[i] = make([]complex128, nRange)
	}
	slow := make([]complex128, m)
	for r := 0; r < nRange; r++ {
		for i := 0; i < m; i++ {
			slow[i] = profiles[i][r]
		}
		spec := fft.FFT(taper(slow, dopplerWin, nDoppler))
		if fftShift {
			spec = FFTShift(spec)
		}
		for d := 0; d < nDoppler; d++ {
			out[d][r] = spec[d]
		}
	}
	return out
}

// PowerDb converts a spectrum to per-bin power in dB. Zero bins map to
// -Inf.
func PowerDb(x []complex128) []types.DbValue {
	out := make([]types.DbValue, len(x))
	for i, v := range x {
		p := real(v)*real(v) + imag(v)*imag(v)
		out[i] = types.LinearToDb(p)
	}
	return out
}

// PeakBin returns the index of the strongest bin of a spectrum.
func PeakBin(x []complex128) int {
	best, bestPow := 0, -1.0
	for i, v := range x {
		p := real(v)*real(v) + imag(v)*imag(v)
		if p > bestPow {
			best, bestPow = i, p
		}
	}
	return best
}
