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
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sbrsim/sbrsim/prng"
	"github.com/sbrsim/sbrsim/radar"
	"github.com/sbrsim/sbrsim/scene"
	"github.com/sbrsim/sbrsim/types"
)

// runDescriptor is the YAML form of a whole run: the run-level knobs
// plus references to the radar and scene files. Zero-valued fields fall
// back to the defaults.
type runDescriptor struct {
	Seed             int64   `yaml:"seed"`
	Snapshots        int     `yaml:"snapshots"`
	SnapshotInterval float64 `yaml:"interval"`
	StartTime        float64 `yaml:"start_time"`

	RayDensityDeg float64 `yaml:"ray_density"`
	MaxBounces    int     `yaml:"max_bounces"`
	RayJitter     bool    `yaml:"jitter"`
	Noise         *bool   `yaml:"noise"`
	Workers       int     `yaml:"workers"`

	RadarPath string `yaml:"radar"`
	ScenePath string `yaml:"scene"`
}

func (rd *runDescriptor) toConfig() *Config {
	cfg := DefaultConfig()
	cfg.Seed = prng.RandomSeed(rd.Seed)
	if rd.Snapshots != 0 {
		cfg.Snapshots = rd.Snapshots
	}
	if rd.SnapshotInterval != 0 {
		cfg.SnapshotInterval = rd.SnapshotInterval
	}
	cfg.StartTime = rd.StartTime
	if rd.RayDensityDeg != 0 {
		cfg.RayDensityDeg = rd.RayDensityDeg
	}
	if rd.MaxBounces != 0 {
		cfg.MaxBounces = rd.MaxBounces
	}
	cfg.RayJitter = rd.RayJitter
	if rd.Noise != nil {
		cfg.NoiseEnabled = *rd.Noise
	}
	cfg.Workers = rd.Workers
	return cfg
}

// resolve interprets a descriptor-referenced path relative to the
// descriptor's own directory.
func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load reads a run descriptor file and assembles the full simulation
// from it, loading the referenced radar configuration and scene.
func Load(path string) (*Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.ConfigErrorf("read run descriptor %q: %v", path, err)
	}
	var rd runDescriptor
	if err := yaml.Unmarshal(data, &rd); err != nil {
		return nil, types.ConfigErrorf("parse run descriptor %q: %v", path, err)
	}
	if rd.ScenePath == "" {
		return nil, types.ConfigErrorf("run descriptor %q references no scene", path)
	}
	baseDir := filepath.Dir(path)

	radarCfg := radar.DefaultConfig()
	if rd.RadarPath != "" {
		if radarCfg, err = radar.LoadConfig(resolve(baseDir, rd.RadarPath)); err != nil {
			return nil, err
		}
	}
	sc, err := scene.FromDescriptorFile(resolve(baseDir, rd.ScenePath))
	if err != nil {
		return nil, err
	}
	return New(rd.toConfig(), radarCfg, sc)
}
