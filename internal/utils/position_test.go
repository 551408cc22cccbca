package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPixels(t *testing.T) {
	px := ToPixels(Position{X: 50, Y: 25}, Size{Width: 800, Height: 600})
	assert.Equal(t, 400.0, px.X)
	assert.Equal(t, 150.0, px.Y)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := Position{X: rng.Float64() * 100, Y: rng.Float64() * 100}
		s := Size{Width: rng.Float64()*2000 + 1, Height: rng.Float64()*2000 + 1}

		got := ToPercent(ToPixels(p, s), s)
		assert.InDelta(t, p.X, got.X, 1e-9)
		assert.InDelta(t, p.Y, got.Y, 1e-9)
	}
}

func TestToPercentClampsOutOfBounds(t *testing.T) {
	s := Size{Width: 800, Height: 600}

	cases := []Position{
		{X: -50, Y: 300},
		{X: 900, Y: 300},
		{X: 400, Y: -10},
		{X: 400, Y: 6000},
		{X: -1, Y: -1},
		{X: 1e9, Y: 1e9},
	}
	for _, px := range cases {
		p := ToPercent(px, s)
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.LessOrEqual(t, p.X, 100.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.LessOrEqual(t, p.Y, 100.0)
	}
}

func TestToPercentZeroSize(t *testing.T) {
	// Degenerate containers must not divide by zero.
	p := ToPercent(Position{X: 10, Y: 10}, Size{})
	assert.Equal(t, Position{}, p)
}

func TestRandomPositionKeepsMargin(t *testing.T) {
	for i := 0; i < 10000; i++ {
		p := RandomPosition()
		assert.GreaterOrEqual(t, p.X, 10.0)
		assert.LessOrEqual(t, p.X, 90.0)
		assert.GreaterOrEqual(t, p.Y, 10.0)
		assert.LessOrEqual(t, p.Y, 90.0)
	}
}
