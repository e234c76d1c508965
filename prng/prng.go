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

// Package prng provides the pseudo-random number sources of a simulation
// run. Each Source is owned by a single simulation context; there is no
// package-level mutable state, so concurrent simulations with distinct
// seeds stay fully reproducible.
package prng

import (
	"math/rand"
	"time"
)

type RandomSeed int64

// Source holds the root seed of one simulation run and derives per-concern
// sub-generators from it.
type Source struct {
	rootSeed RandomSeed
}

// NewSource creates a Source, either with a fixed PRNG seed (rootSeed != 0)
// or a 'random' time-based PRNG seed (if rootSeed == 0).
func NewSource(rootSeed RandomSeed) *Source {
	if rootSeed == 0 {
		rootSeed = RandomSeed(time.Now().UnixNano())
	}
	return &Source{rootSeed: rootSeed}
}

// Seed returns the effective root seed of this Source.
func (s *Source) Seed() RandomSeed {
	return s.rootSeed
}

// Fork derives an independent generator for the given stream tag. Equal
// (seed, tag) pairs always yield the same stream, regardless of the order
// in which parallel workers ask for them.
func (s *Source) Fork(tag int64) *rand.Rand {
	mixed := uint64(s.rootSeed) ^ uint64(tag)*0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(int64(mixed)))
}

// NoiseGenerator derives the thermal-noise generator for one work unit.
// Unit indices keep noise samples independent between units and stable
// across runs.
func (s *Source) NoiseGenerator(unitIndex int) *rand.Rand {
	return s.Fork(int64(unitIndex)*2 + 1)
}

// JitterGenerator derives the ray-grid jitter generator for one work unit.
func (s *Source) JitterGenerator(unitIndex int) *rand.Rand {
	return s.Fork(int64(unitIndex)*2 + 2)
}
