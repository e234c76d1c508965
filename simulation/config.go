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

package simulation

import (
	"github.com/sbrsim/sbrsim/prng"
	"github.com/sbrsim/sbrsim/tracer"
	"github.com/sbrsim/sbrsim/types"
)

const (
	DefaultSnapshots        = 1
	DefaultSnapshotInterval = 0.1 // s
)

// Config holds the run-level knobs of a simulation: how many scene
// snapshots to trace, how they advance in time, and how the tracing and
// noise machinery behaves.
type Config struct {
	Seed prng.RandomSeed // 0 picks a time-based seed

	Snapshots        int
	SnapshotInterval float64 // s between consecutive snapshots
	StartTime        float64 // s, time of the first snapshot

	RayDensityDeg float64 // angular ray-grid step, degrees
	MaxBounces    int
	RayJitter     bool // perturb rays within their grid cells

	NoiseEnabled bool
	Workers      int // 0 means one worker per CPU
}

func DefaultConfig() *Config {
	return &Config{
		Snapshots:        DefaultSnapshots,
		SnapshotInterval: DefaultSnapshotInterval,
		RayDensityDeg:    tracer.DefaultDensityDeg,
		MaxBounces:       tracer.DefaultMaxBounces,
		NoiseEnabled:     true,
	}
}

// Validate checks the run-level invariants.
func (c *Config) Validate() error {
	if c.Snapshots < 1 {
		return types.ConfigErrorf("at least one snapshot required, got %d", c.Snapshots)
	}
	if c.Snapshots > 1 && c.SnapshotInterval <= 0 {
		return types.ConfigErrorf("snapshot interval must be positive, got %g", c.SnapshotInterval)
	}
	if c.RayDensityDeg <= 0 {
		return types.ConfigErrorf("ray density must be positive, got %g", c.RayDensityDeg)
	}
	if c.MaxBounces < 1 {
		return types.ConfigErrorf("at least one bounce required, got %d", c.MaxBounces)
	}
	if c.Workers < 0 {
		return types.ConfigErrorf("worker count must not be negative, got %d", c.Workers)
	}
	return nil
}
