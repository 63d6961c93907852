package client

import (
	"math"

	"github.com/tomz197/spacedefender/internal/draw"
	"github.com/tomz197/spacedefender/internal/object"
)

// fieldMargin is the world-unit border shown around the playfield bounds, so
// ships at the edge and shots just past it stay visible.
const fieldMargin = 1.0

// playfield maps world coordinates (y up) onto the canvas' logical space
// (y down) with a uniform scale, centered horizontally.
type playfield struct {
	minX    float64
	maxY    float64
	scale   float64 // Logical units per world unit
	offsetX float64 // Left padding in logical units
}

func newPlayfield(b object.Bounds, logicalWidth, logicalHeight float64) playfield {
	worldW := b.MaxX - b.MinX + 2*fieldMargin
	worldH := b.MaxY - b.MinY + 2*fieldMargin
	scale := math.Min(logicalWidth/worldW, logicalHeight/worldH)
	return playfield{
		minX:    b.MinX - fieldMargin,
		maxY:    b.MaxY + fieldMargin,
		scale:   scale,
		offsetX: (logicalWidth - worldW*scale) / 2,
	}
}

// toCanvas converts a world position to logical canvas coordinates.
func (f playfield) toCanvas(x, y float64) draw.Point {
	return draw.Point{
		X: f.offsetX + (x-f.minX)*f.scale,
		Y: (f.maxY - y) * f.scale,
	}
}

// length converts a world distance to logical units.
func (f playfield) length(d float64) float64 {
	return d * f.scale
}

// starCount is the number of background stars per session.
const starCount = 40

// newStarfield scatters stars over the playfield, margin included.
func newStarfield(rng object.Rand, b object.Bounds) []draw.Point {
	w := b.MaxX - b.MinX + 2*fieldMargin
	h := b.MaxY - b.MinY + 2*fieldMargin
	stars := make([]draw.Point, starCount)
	for i := range stars {
		stars[i] = draw.Point{
			X: b.MinX - fieldMargin + rng.Float64()*w,
			Y: b.MinY - fieldMargin + rng.Float64()*h,
		}
	}
	return stars
}
