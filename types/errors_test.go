package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	err := GeometryErrorf("mesh %q has no triangles", "x.stl")
	assert.ErrorIs(t, err, ErrGeometry)
	assert.NotErrorIs(t, err, ErrSceneConfig)
	assert.Contains(t, err.Error(), "x.stl")

	assert.ErrorIs(t, SceneConfigErrorf("two ground targets"), ErrSceneConfig)
	assert.ErrorIs(t, ConfigErrorf("pulse longer than PRI"), ErrConfig)
}
