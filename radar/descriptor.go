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

package radar

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sbrsim/sbrsim/types"
)

// channelDescriptor is the YAML form of one antenna channel.
type channelDescriptor struct {
	Location [3]float64 `yaml:"location"`
	AzAngles []float64  `yaml:"az_angles"`
	AzGains  []float64  `yaml:"az_gains"`
	ElAngles []float64  `yaml:"el_angles"`
	ElGains  []float64  `yaml:"el_gains"`
}

// configDescriptor mirrors Config with YAML tags; zero-valued fields fall
// back to the defaults so a file only has to name what it overrides.
type configDescriptor struct {
	CenterFrequency float64 `yaml:"center_frequency"`
	Bandwidth       float64 `yaml:"bandwidth"`
	PulseDuration   float64 `yaml:"pulse_duration"`
	PRI             float64 `yaml:"pri"`
	Pulses          int     `yaml:"pulses"`
	SampleRate      float64 `yaml:"sample_rate"`

	TxPowerDbm     *float64 `yaml:"tx_power_dbm"`
	NoiseFigureDb  *float64 `yaml:"noise_figure_db"`
	RfGainDb       *float64 `yaml:"rf_gain_db"`
	BasebandGainDb *float64 `yaml:"baseband_gain_db"`
	LoadResistance float64  `yaml:"load_resistance"`

	TxChannels []channelDescriptor `yaml:"tx_channels"`
	RxChannels []channelDescriptor `yaml:"rx_channels"`
}

func (cd *channelDescriptor) toChannel() Channel {
	return Channel{
		Location:  types.Vec3{X: cd.Location[0], Y: cd.Location[1], Z: cd.Location[2]},
		Azimuth:   Pattern{AnglesDeg: cd.AzAngles, GainsDb: cd.AzGains},
		Elevation: Pattern{AnglesDeg: cd.ElAngles, GainsDb: cd.ElGains},
	}
}

// LoadConfig reads a YAML radar configuration file, applies defaults for
// unset fields, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.ConfigErrorf("read radar config %q: %v", path, err)
	}
	var d configDescriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, types.ConfigErrorf("parse radar config %q: %v", path, err)
	}

	cfg := DefaultConfig()
	if d.CenterFrequency != 0 {
		cfg.CenterFrequency = d.CenterFrequency
	}
	if d.Bandwidth != 0 {
		cfg.Bandwidth = d.Bandwidth
	}
	if d.PulseDuration != 0 {
		cfg.PulseDuration = d.PulseDuration
	}
	if d.PRI != 0 {
		cfg.PRI = d.PRI
	}
	if d.Pulses != 0 {
		cfg.Pulses = d.Pulses
	}
	if d.SampleRate != 0 {
		cfg.SampleRate = d.SampleRate
	}
	if d.TxPowerDbm != nil {
		cfg.TxPowerDbm = *d.TxPowerDbm
	}
	if d.NoiseFigureDb != nil {
		cfg.NoiseFigureDb = *d.NoiseFigureDb
	}
	if d.RfGainDb != nil {
		cfg.RfGainDb = *d.RfGainDb
	}
	if d.BasebandGainDb != nil {
		cfg.BasebandGainDb = *d.BasebandGainDb
	}
	if d.LoadResistance != 0 {
		cfg.LoadResistance = d.LoadResistance
	}
	if len(d.TxChannels) > 0 {
		cfg.TxChannels = nil
		for _, cd := range d.TxChannels {
			cfg.TxChannels = append(cfg.TxChannels, cd.toChannel())
		}
	}
	if len(d.RxChannels) > 0 {
		cfg.RxChannels = nil
		for _, cd := range d.RxChannels {
			cfg.RxChannels = append(cfg.RxChannels, cd.toChannel())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
