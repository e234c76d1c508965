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

package scene

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sbrsim/sbrsim/geometry"
	"github.com/sbrsim/sbrsim/types"
)

// Permittivity is the YAML form of a complex relative permittivity.
type Permittivity struct {
	Real float64 `yaml:"real"`
	Imag float64 `yaml:"imag"`
}

// TargetDescriptor is the consumed-input contract for one target:
//
//	targets:
//	  - mesh: reflector.stl
//	    location: [10, 0, 0]
//	    velocity: [1, 0, 0]
//	  - mesh: ground.stl
//	    location: [0, 0, -0.5]
//	    permittivity: {real: 3.2, imag: 0.1}
//	    ground: true
type TargetDescriptor struct {
	MeshPath     string        `yaml:"mesh"`
	Location     [3]float64    `yaml:"location"`
	Velocity     [3]float64    `yaml:"velocity"`
	Permittivity *Permittivity `yaml:"permittivity"`
	IsGround     bool          `yaml:"ground"`
}

// Descriptor is a whole scene file.
type Descriptor struct {
	Targets []TargetDescriptor `yaml:"targets"`
}

// LoadDescriptor reads and parses a YAML scene file without loading the
// referenced meshes.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.SceneConfigErrorf("read scene %q: %v", path, err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, types.SceneConfigErrorf("parse scene %q: %v", path, err)
	}
	return &d, nil
}

// FromDescriptors loads every referenced mesh (paths resolved relative to
// baseDir when not absolute) and assembles the validated Scene.
func FromDescriptors(d *Descriptor, baseDir string) (*Scene, error) {
	var targets []*Target
	for i, td := range d.Targets {
		path := td.MeshPath
		if path == "" {
			return nil, types.SceneConfigErrorf("target %d has no mesh path", i)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		mesh, err := geometry.LoadSTL(path)
		if err != nil {
			return nil, err
		}
		tgt := &Target{
			Mesh:     mesh,
			Location: types.Vec3{X: td.Location[0], Y: td.Location[1], Z: td.Location[2]},
			Velocity: types.Vec3{X: td.Velocity[0], Y: td.Velocity[1], Z: td.Velocity[2]},
			IsGround: td.IsGround,
		}
		if td.Permittivity != nil {
			tgt.Permittivity = complex(td.Permittivity.Real, td.Permittivity.Imag)
			tgt.HasPermittivity = true
		}
		targets = append(targets, tgt)
	}
	return New(targets)
}

// FromDescriptorFile loads a scene file and its meshes in one call.
// Relative mesh paths are resolved against the scene file's directory.
func FromDescriptorFile(path string) (*Scene, error) {
	d, err := LoadDescriptor(path)
	if err != nil {
		return nil, err
	}
	return FromDescriptors(d, filepath.Dir(path))
}
