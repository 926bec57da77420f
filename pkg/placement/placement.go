// Package placement defines the spatial payload applied to pooled instances
// on activation. Pools pass placements through verbatim; only lifecycle
// implementations interpret them.
package placement

// Vec3 is a position in world space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Quat is an orientation quaternion.
type Quat struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// Placement carries the position and orientation an instance receives when
// it is activated.
type Placement struct {
	Position Vec3 `json:"position" yaml:"position"`
	Rotation Quat `json:"rotation" yaml:"rotation"`
}

// Identity returns a placement at the origin with no rotation.
func Identity() Placement {
	return Placement{Rotation: Quat{W: 1}}
}

// At returns a placement at the given position with no rotation.
func At(x, y, z float64) Placement {
	return Placement{
		Position: Vec3{X: x, Y: y, Z: z},
		Rotation: Quat{W: 1},
	}
}
