package placement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/spawnpool/pkg/placement"
)

func TestIdentity(t *testing.T) {
	p := placement.Identity()

	assert.Equal(t, placement.Vec3{}, p.Position)
	assert.Equal(t, placement.Quat{W: 1}, p.Rotation)
}

func TestAt(t *testing.T) {
	p := placement.At(1, 2, 3)

	assert.Equal(t, placement.Vec3{X: 1, Y: 2, Z: 3}, p.Position)
	assert.Equal(t, placement.Quat{W: 1}, p.Rotation, "At applies no rotation")
}
