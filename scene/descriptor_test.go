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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbrsim/sbrsim/types"
	"gopkg.in/yaml.v3"
)

func TestDescriptorUnmarshal(t *testing.T) {
	src := `
targets:
  - mesh: reflector.stl
    location: [10, 0, 0]
    velocity: [1, 0, 0]
  - mesh: ground.stl
    location: [0, 0, -0.5]
    permittivity: {real: 3.2, imag: 0.1}
    ground: true
`
	var d Descriptor
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))
	require.Len(t, d.Targets, 2)
	assert.Equal(t, "reflector.stl", d.Targets[0].MeshPath)
	assert.Equal(t, [3]float64{10, 0, 0}, d.Targets[0].Location)
	assert.Nil(t, d.Targets[0].Permittivity)
	assert.True(t, d.Targets[1].IsGround)
	require.NotNil(t, d.Targets[1].Permittivity)
	assert.Equal(t, 3.2, d.Targets[1].Permittivity.Real)
}

func TestFromDescriptorsRejectsMissingPath(t *testing.T) {
	_, err := FromDescriptors(&Descriptor{Targets: []TargetDescriptor{{}}}, ".")
	assert.ErrorIs(t, err, types.ErrSceneConfig)
}

func TestLoadDescriptorRejectsBadYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("targets: ["), 0o644))
	_, err := LoadDescriptor(path)
	assert.ErrorIs(t, err, types.ErrSceneConfig)

	_, err = LoadDescriptor(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, types.ErrSceneConfig)
}
