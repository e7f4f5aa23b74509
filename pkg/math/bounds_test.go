package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsCorners(t *testing.T) {
	b := Bounds{Min: Vec3{-1, 0, -2}, Max: Vec3{1, 3, 2}}
	assert.Equal(t, b.Min, b.Corner(0))
	assert.Equal(t, b.Max, b.Corner(7))
	assert.Equal(t, Vec3{1, 3, -2}, b.Corner(3))

	for _, e := range BoxEdges {
		a, c := b.Corner(e[0]), b.Corner(e[1])
		diff := 0
		if a.X != c.X {
			diff++
		}
		if a.Y != c.Y {
			diff++
		}
		if a.Z != c.Z {
			diff++
		}
		assert.Equal(t, 1, diff, "edge %v must run along one axis", e)
	}
}

func TestBoundsExpandContains(t *testing.T) {
	b := BoundsFromCenter(Vec3{0, 1, 0}, Vec3{2, 2, 2})
	assert.Equal(t, Vec3{0, 1, 0}, b.Center())
	assert.True(t, b.Contains(Vec3{1, 2, 1}))
	assert.False(t, b.Contains(Vec3{1.2, 2, 1}))

	e := b.Expand(1)
	assert.Equal(t, Vec3{3, 3, 3}, e.Size())
	assert.True(t, e.Contains(Vec3{1.2, 2, 1}))
}

func TestBoundsTransform(t *testing.T) {
	b := BoundsFromCenter(Vec3{}, Vec3{2, 4, 2})
	got := b.Transform(Translate(0, 5, 0).Mul(RotateY(45 * Deg2Rad)))
	assertVec3(t, Vec3{0, 5, 0}, got.Center())
	assertVec3(t, Vec3{2.828427, 4, 2.828427}, got.Size())

	got = BoundsFromCenter(Vec3{}, Vec3{1, 3, 1}).Encapsulate(Vec3{0, 4, 0})
	assert.Equal(t, float32(4), got.Max.Y)
}
