// Package physics provides collision detection and distance utilities.
package physics

import (
	"math"

	"github.com/tomz197/spacedefender/internal/object"
)

// CollisionRadius is the radius assumed for every entity, whatever its drawn size.
const CollisionRadius = 0.5

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// CheckCollision reports whether a and b are closer than two collision radii.
// Positions are compared only at the moment of the call, so fast movers can
// pass through each other between frames.
func CheckCollision(a, b object.Positioned) bool {
	ax, ay := a.GetPosition()
	bx, by := b.GetPosition()
	return CirclesOverlap(ax, ay, CollisionRadius, bx, by, CollisionRadius)
}
