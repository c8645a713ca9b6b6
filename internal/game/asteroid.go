package game

import "github.com/TimArnettThales/FuzzyAsteroids/internal/core"

// Size classes an asteroid from smallest (1) to largest (4). Destroying a
// size above the smallest spawns children of the next size down.
type Size int

const (
	SizeSmall  Size = 1
	SizeMedium Size = 2
	SizeBig    Size = 3
	SizeHuge   Size = 4
)

// ChildrenPerSplit is how many next-size-down asteroids a destroyed
// asteroid breaks into.
const ChildrenPerSplit = 3

// asteroidRadius maps size class to collision radius.
var asteroidRadius = map[Size]float64{
	SizeHuge:   60,
	SizeBig:    30,
	SizeMedium: 15,
	SizeSmall:  8,
}

// asteroidSpeed maps size class to base speed; smaller pieces fly faster.
var asteroidSpeed = map[Size]float64{
	SizeHuge:   60,
	SizeBig:    90,
	SizeMedium: 120,
	SizeSmall:  150,
}

func (s Size) valid() bool {
	return s >= SizeSmall && s <= SizeHuge
}

// Radius returns the collision radius for the size class.
func (s Size) Radius() float64 {
	return asteroidRadius[s]
}

// Speed returns the base speed for the size class.
func (s Size) Speed() float64 {
	return asteroidSpeed[s]
}

// PotentialDestructions returns the total number of asteroids a single
// asteroid of this size can ever yield, itself and all descendants.
func (s Size) PotentialDestructions() int {
	total := 0
	pieces := 1
	for sz := s; sz >= SizeSmall; sz-- {
		total += pieces
		pieces *= ChildrenPerSplit
	}
	return total
}

// Asteroid is a drifting rock with a size class. It moves in a straight
// line at its spawn velocity until destroyed.
type Asteroid struct {
	Entity
	Size Size
}

func newAsteroid(id EntityID, pos core.Vec2, heading float64, size Size) *Asteroid {
	return &Asteroid{
		Entity: Entity{
			ID:     id,
			Kind:   KindAsteroid,
			Pos:    pos,
			Vel:    core.HeadingVec(heading).Scale(size.Speed()),
			Angle:  core.NormalizeAngle(heading),
			Radius: size.Radius(),
			Alive:  true,
		},
		Size: size,
	}
}
