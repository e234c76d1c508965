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
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/sbrsim/sbrsim/logger"
)

// Kpi is the run statistics record, in a form that serializes directly
// to a report file.
type Kpi struct {
	Status   string `json:"status"`
	FileTime string `json:"file_time,omitempty"`
	Seed     int64  `json:"seed"`

	Units          int     `json:"units"`
	RaysCast       int64   `json:"rays_cast"`
	PathsTraced    int64   `json:"paths_traced"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	RaysPerSecond  float64 `json:"rays_per_second"`
}

// KpiManager bookkeeps statistics for one simulation across its runs.
type KpiManager struct {
	sim  *Simulation
	mtx  sync.Mutex
	data Kpi
}

// NewKpiManager creates the KPI bookkeeper for a particular simulation.
func NewKpiManager(sim *Simulation) *KpiManager {
	logger.AssertNotNil(sim)
	return &KpiManager{sim: sim, data: Kpi{Status: "idle"}}
}

// Record stores the statistics of one completed run, replacing those of
// any earlier run.
func (km *KpiManager) Record(units int, raysCast, pathsTraced int64, elapsed time.Duration) {
	km.mtx.Lock()
	defer km.mtx.Unlock()
	km.data = Kpi{
		Status:         "ok",
		Seed:           int64(km.sim.Seed()),
		Units:          units,
		RaysCast:       raysCast,
		PathsTraced:    pathsTraced,
		ElapsedSeconds: elapsed.Seconds(),
	}
	if s := elapsed.Seconds(); s > 0 {
		km.data.RaysPerSecond = float64(raysCast) / s
	}
}

// Data returns a copy of the current statistics.
func (km *KpiManager) Data() Kpi {
	km.mtx.Lock()
	defer km.mtx.Unlock()
	return km.data
}

// SaveFile writes the statistics as an indented JSON report.
func (km *KpiManager) SaveFile(fn string) error {
	data := km.Data()
	data.FileTime = time.Now().Format(time.RFC3339)
	raw, err := json.MarshalIndent(&data, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "marshal KPI data")
	}
	if err := os.WriteFile(fn, raw, 0o644); err != nil {
		return errors.Wrapf(err, "write KPI file %s", fn)
	}
	return nil
}
