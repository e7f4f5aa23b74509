package shell

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSkipsEqualParams(t *testing.T) {
	var c Cache
	assert.Nil(t, c.Mesh())

	p := testParams(false)
	first, rebuilt, err := c.Rebuild(p)
	require.NoError(t, err)
	assert.True(t, rebuilt)

	again, rebuilt, err := c.Rebuild(p)
	require.NoError(t, err)
	assert.False(t, rebuilt)
	assert.Same(t, first, again)

	p.Angle = 180
	moved, rebuilt, err := c.Rebuild(p)
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.NotSame(t, first, moved)
	assert.Equal(t, first.Vertices, moved.Vertices, "angle only moves the panel")
	assert.Equal(t, p, c.Params())
}

func TestCacheRebuildMatchesFreshBuild(t *testing.T) {
	var c Cache
	p := testParams(true)
	_, _, err := c.Rebuild(testParams(false))
	require.NoError(t, err)

	cached, _, err := c.Rebuild(p)
	require.NoError(t, err)
	fresh, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)

	c.Reset()
	_, rebuilt, err := c.Rebuild(p)
	require.NoError(t, err)
	assert.True(t, rebuilt)
}

func TestCacheKeepsMeshOnFailedRebuild(t *testing.T) {
	var c Cache
	p := testParams(false)
	good, _, err := c.Rebuild(p)
	require.NoError(t, err)

	bad := p
	bad.Envelope.MaxRad = math32.NaN()
	mesh, rebuilt, err := c.Rebuild(bad)
	assert.True(t, errors.Is(err, ErrBadEnvelope))
	assert.False(t, rebuilt)
	assert.Same(t, good, mesh)
	assert.Same(t, good, c.Mesh())
	assert.Equal(t, p, c.Params())
}
