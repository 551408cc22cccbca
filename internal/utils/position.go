package utils

import (
	"math/rand"
)

// Position is a location inside an artwork's image bounding box, expressed
// as percentages of the container on each axis so it survives viewport
// resizes. This is the only form that gets persisted.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a measured container size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToPixels converts a percent-space position to pixel coordinates within
// the given container.
func ToPixels(p Position, s Size) Position {
	return Position{
		X: p.X / 100 * s.Width,
		Y: p.Y / 100 * s.Height,
	}
}

// ToPercent converts pixel coordinates back to percent space, clamping each
// axis to [0,100]. Fast drags report coordinates outside the container, so
// out-of-bounds input is normal, not an error.
func ToPercent(px Position, s Size) Position {
	var p Position
	if s.Width > 0 {
		p.X = px.X / s.Width * 100
	}
	if s.Height > 0 {
		p.Y = px.Y / s.Height * 100
	}
	p.X = clampPercent(p.X)
	p.Y = clampPercent(p.Y)
	return p
}

// RandomPosition picks a spot for quick comments, keeping a 10% margin on
// every edge so bubbles never sit flush against the image border.
func RandomPosition() Position {
	return Position{
		X: float64(rand.Intn(80) + 10),
		Y: float64(rand.Intn(80) + 10),
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
