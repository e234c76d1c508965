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
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbrsim/sbrsim/geometry"
	"github.com/sbrsim/sbrsim/prng"
	"github.com/sbrsim/sbrsim/radar"
	"github.com/sbrsim/sbrsim/scene"
	"github.com/sbrsim/sbrsim/types"
	"github.com/sbrsim/sbrsim/waveform"
)

// reflector builds a small plate facing the -X direction, so it returns
// energy to a radar near the origin.
func reflector(location, velocity types.Vec3, widthY, heightZ float64) *scene.Target {
	return &scene.Target{
		Mesh:     geometry.NewPlate(types.Vec3{}, types.Vec3{Z: 1}, types.Vec3{Y: 1}, heightZ, widthY),
		Location: location,
		Velocity: velocity,
	}
}

func flatGround(z float64, eps complex128) *scene.Target {
	return &scene.Target{
		Mesh:            geometry.NewGroundPlane(200),
		Location:        types.Vec3{Z: z},
		Permittivity:    eps,
		HasPermittivity: true,
		IsGround:        true,
	}
}

func TestConfigValidation(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero snapshots", func(c *Config) { c.Snapshots = 0 }},
		{"zero interval", func(c *Config) { c.Snapshots = 2; c.SnapshotInterval = 0 }},
		{"negative density", func(c *Config) { c.RayDensityDeg = -1 }},
		{"zero bounces", func(c *Config) { c.MaxBounces = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), types.ErrConfig)
		})
	}
}

func TestRunSilentSceneYieldsZeroCube(t *testing.T) {
	sc, err := scene.New(nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Snapshots = 2
	cfg.NoiseEnabled = false
	cfg.Seed = 1
	sim, err := New(cfg, radar.DefaultConfig(), sc)
	require.NoError(t, err)

	cube, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, cube.Snapshots)
	assert.Equal(t, 1, cube.RxCount)
	assert.True(t, cube.IsZero())
}

func runOnce(t *testing.T, seed int64, workers int) *waveform.Cube {
	sc, err := scene.New([]*scene.Target{
		reflector(types.Vec3{X: 12}, types.Vec3{X: -0.5}, 0.3, 0.3),
		flatGround(-0.5, complex(3.2, 0.1)),
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Seed = prng.RandomSeed(seed)
	cfg.Snapshots = 4
	cfg.SnapshotInterval = 0.05
	cfg.RayDensityDeg = 0.3
	cfg.RayJitter = true
	cfg.Workers = workers
	sim, err := New(cfg, radar.DefaultConfig(), sc)
	require.NoError(t, err)

	cube, err := sim.Run(context.Background())
	require.NoError(t, err)
	return cube
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	a := runOnce(t, 5, 1)
	b := runOnce(t, 5, 4)
	assert.True(t, a.Equal(b), "same seed must give identical cubes regardless of workers")

	c := runOnce(t, 6, 4)
	assert.False(t, a.Equal(c), "different seeds must give different cubes")
}

func TestRunCancelled(t *testing.T) {
	sc, err := scene.New([]*scene.Target{
		reflector(types.Vec3{X: 12}, types.Vec3{}, 0.3, 0.3),
	})
	require.NoError(t, err)
	sim, err := New(DefaultConfig(), radar.DefaultConfig(), sc)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKpiReport(t *testing.T) {
	sc, err := scene.New([]*scene.Target{
		reflector(types.Vec3{X: 10}, types.Vec3{}, 0.3, 0.3),
	})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Seed = 11
	cfg.NoiseEnabled = false
	sim, err := New(cfg, radar.DefaultConfig(), sc)
	require.NoError(t, err)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)

	data := sim.Kpi().Data()
	assert.Equal(t, "ok", data.Status)
	assert.Equal(t, int64(11), data.Seed)
	assert.Equal(t, 1, data.Units)
	assert.Greater(t, data.RaysCast, int64(0))
	assert.Greater(t, data.PathsTraced, int64(0))

	fn := filepath.Join(t.TempDir(), "kpi.json")
	require.NoError(t, sim.Kpi().SaveFile(fn))
	raw, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rays_cast"`)
}

// countExtrema counts the turning points of a series, ignoring swings
// smaller than tol. ref tracks the running extremum of the current
// direction; until a first move of tol establishes a direction it stays
// at the initial sample, so slow drifts still accumulate.
func countExtrema(vals []float64, tol float64) int {
	n, dir := 0, 0
	ref := vals[0]
	for _, v := range vals[1:] {
		switch {
		case v > ref+tol:
			if dir < 0 {
				n++
			}
			dir, ref = 1, v
		case v < ref-tol:
			if dir > 0 {
				n++
			}
			dir, ref = -1, v
		default:
			if (dir > 0 && v > ref) || (dir < 0 && v < ref) {
				ref = v
			}
		}
	}
	return n
}

func TestCountExtrema(t *testing.T) {
	// Three cycles of a finely sampled sinusoid: per-sample steps stay
	// far below tol, but every reversal must still register.
	vals := make([]float64, 300)
	for i := range vals {
		vals[i] = math.Sin(2 * math.Pi * float64(i) / 100)
	}
	assert.Equal(t, 6, countExtrema(vals, 0.2))

	// Sub-tolerance ripple is not an oscillation.
	assert.Equal(t, 0, countExtrema([]float64{1, 1.05, 0.95, 1}, 0.2))
}

func rms(x []complex128) float64 {
	var p float64
	for _, v := range x {
		p += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(p / float64(len(x)))
}

// TestMovingReflectorGroundFading runs the canonical multipath scenario:
// a reflector closing from 15 m to 2 m over a lossy ground plane. The
// ratio of the received amplitude with and without the ground must show
// the two-ray fading oscillation.
func TestMovingReflectorGroundFading(t *testing.T) {
	radarCfg := radar.DefaultConfig()
	radarCfg.CenterFrequency = 3e9 // long wavelength keeps the plate coherent
	require.NoError(t, radarCfg.Validate())

	plate := func() *scene.Target {
		return reflector(types.Vec3{X: 15}, types.Vec3{X: -0.45}, 0.3, 0.02)
	}
	runSeries := func(withGround bool) []float64 {
		targets := []*scene.Target{plate()}
		if withGround {
			targets = append(targets, flatGround(-0.5, complex(3.2, 0.1)))
		}
		sc, err := scene.New(targets)
		require.NoError(t, err)

		cfg := DefaultConfig()
		cfg.Seed = 1
		cfg.Snapshots = 290
		cfg.SnapshotInterval = 0.1
		cfg.RayDensityDeg = 0.2
		cfg.NoiseEnabled = false
		sim, err := New(cfg, radarCfg, sc)
		require.NoError(t, err)
		cube, err := sim.Run(context.Background())
		require.NoError(t, err)

		series := make([]float64, cube.Snapshots)
		for i := range series {
			series[i] = rms(cube.Pulse(i, 0, 0))
		}
		return series
	}

	direct := runSeries(false)
	multipath := runSeries(true)

	ratio := make([]float64, len(direct))
	maxRatio, minRatio := 0.0, math.Inf(1)
	for i := range direct {
		require.Greater(t, direct[i], 0.0, "snapshot %d has no direct return", i)
		ratio[i] = multipath[i] / direct[i]
		maxRatio = math.Max(maxRatio, ratio[i])
		minRatio = math.Min(minRatio, ratio[i])
	}

	// Constructive and destructive fading around the free-space level.
	assert.Greater(t, maxRatio, 1.2)
	assert.Less(t, minRatio, 0.9)
	assert.GreaterOrEqual(t, countExtrema(ratio, 0.1*maxRatio), 3)
}

func TestLoadRunDescriptor(t *testing.T) {
	dir := t.TempDir()
	stl := `solid plate
facet normal 0 0 0
outer loop
vertex 0 0 0
vertex 0 1 0
vertex 0 0 1
endloop
endfacet
endsolid plate
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plate.stl"), []byte(stl), 0o644))
	sceneYaml := `
targets:
  - mesh: plate.stl
    location: [10, 0, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte(sceneYaml), 0o644))
	runYaml := `
seed: 9
snapshots: 3
interval: 0.2
noise: false
scene: scene.yaml
`
	runPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(runPath, []byte(runYaml), 0o644))

	sim, err := Load(runPath)
	require.NoError(t, err)
	assert.EqualValues(t, 9, sim.Seed())
	assert.InDelta(t, 0.4, sim.SnapshotTime(2), 1e-12)

	cube, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, cube.Snapshots)

	// A run without a scene reference is rejected.
	require.NoError(t, os.WriteFile(runPath, []byte("seed: 1\n"), 0o644))
	_, err = Load(runPath)
	assert.ErrorIs(t, err, types.ErrConfig)
}
