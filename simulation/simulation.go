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

// Package simulation ties the scene, tracer and waveform layers into a
// reproducible multi-snapshot radar run.
package simulation

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sbrsim/sbrsim/logger"
	"github.com/sbrsim/sbrsim/prng"
	"github.com/sbrsim/sbrsim/radar"
	"github.com/sbrsim/sbrsim/scene"
	"github.com/sbrsim/sbrsim/tracer"
	"github.com/sbrsim/sbrsim/waveform"
)

// Simulation is one configured run over a scene. It is immutable after
// New; Run may be called repeatedly and always produces the same cube
// for the same seed.
type Simulation struct {
	cfg      *Config
	radarCfg *radar.Config
	sc       *scene.Scene
	src      *prng.Source
	synth    *waveform.Synthesizer
	kpi      *KpiManager
}

// New validates both configurations and assembles a simulation over the
// given scene.
func New(cfg *Config, radarCfg *radar.Config, sc *scene.Scene) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := radarCfg.Validate(); err != nil {
		return nil, err
	}
	logger.AssertNotNil(sc)
	s := &Simulation{
		cfg:      cfg,
		radarCfg: radarCfg,
		sc:       sc,
		src:      prng.NewSource(cfg.Seed),
		synth:    waveform.NewSynthesizer(radarCfg),
	}
	s.kpi = NewKpiManager(s)
	logger.Debugf("simulation: %d snapshot(s), %d tx, %d rx, seed %d",
		cfg.Snapshots, len(radarCfg.TxChannels), len(radarCfg.RxChannels), s.src.Seed())
	return s, nil
}

// Seed returns the effective root seed of the run.
func (s *Simulation) Seed() prng.RandomSeed {
	return s.src.Seed()
}

// Kpi returns the run statistics bookkeeper.
func (s *Simulation) Kpi() *KpiManager {
	return s.kpi
}

// SnapshotTime returns the scene time of snapshot index i.
func (s *Simulation) SnapshotTime(i int) float64 {
	return s.cfg.StartTime + float64(i)*s.cfg.SnapshotInterval
}

// unit identifies one (snapshot, tx, rx) work item. Units are numbered
// so noise and jitter streams attach to stable indices no matter which
// worker handles them.
type unit struct {
	snap, tx, rx int
}

func (s *Simulation) units() []unit {
	nTx, nRx := len(s.radarCfg.TxChannels), len(s.radarCfg.RxChannels)
	out := make([]unit, 0, s.cfg.Snapshots*nTx*nRx)
	for i := 0; i < s.cfg.Snapshots; i++ {
		for tx := 0; tx < nTx; tx++ {
			for rx := 0; rx < nRx; rx++ {
				out = append(out, unit{snap: i, tx: tx, rx: rx})
			}
		}
	}
	return out
}

// Run traces every snapshot and synthesizes the baseband cube. Tracing
// and synthesis run on a worker pool; the per-unit blocks are folded
// into the cube in unit order afterwards, so the result is independent
// of scheduling. Cancelling the context aborts the run.
func (s *Simulation) Run(ctx context.Context) (*waveform.Cube, error) {
	started := time.Now()
	nRx := len(s.radarCfg.RxChannels)
	cube := waveform.NewCube(s.cfg.Snapshots, nRx,
		s.radarCfg.Pulses, s.radarCfg.SamplesPerPulse())

	// Snapshots are shared between the units of all channel pairs.
	snaps := make([]*scene.Snapshot, s.cfg.Snapshots)
	for i := range snaps {
		snaps[i] = s.sc.SnapshotAt(s.SnapshotTime(i))
	}

	units := s.units()
	blocks := make([][][]complex128, len(units))
	jobs := make(chan int)
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	var raysCast, pathsTraced int64
	var mtx sync.Mutex
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ui := range jobs {
				u := units[ui]
				eng := tracer.NewEngine(s.cfg.RayDensityDeg, s.cfg.MaxBounces)
				if s.cfg.RayJitter {
					eng.Jitter = s.src.JitterGenerator(ui)
				}
				ps := eng.Trace(snaps[u.snap],
					&s.radarCfg.TxChannels[u.tx], &s.radarCfg.RxChannels[u.rx])
				blocks[ui] = s.synth.Synthesize(&ps)
				mtx.Lock()
				raysCast += eng.RaysCast()
				pathsTraced += eng.PathsTraced()
				mtx.Unlock()
			}
		}()
	}

feed:
	for ui := range units {
		select {
		case jobs <- ui:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic fold: unit order, then noise per (snapshot, rx).
	for ui, u := range units {
		cube.Accumulate(u.snap, u.rx, blocks[ui])
	}
	if s.cfg.NoiseEnabled {
		for i := 0; i < s.cfg.Snapshots; i++ {
			for rx := 0; rx < nRx; rx++ {
				s.synth.AddNoise(cube, i, rx, s.src.NoiseGenerator(i*nRx+rx))
			}
		}
	}

	s.kpi.Record(len(units), raysCast, pathsTraced, time.Since(started))
	logger.Infof("simulation run done: %d unit(s), %d ray(s), %d path(s) in %v",
		len(units), raysCast, pathsTraced, time.Since(started))
	return cube, nil
}
