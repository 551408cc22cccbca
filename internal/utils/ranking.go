package utils

import (
	"math"
)

// z for a 95% confidence interval.
const wilsonZ = 1.96

// WilsonScore returns the lower bound of the Wilson score interval for the
// given vote counts, scaled to 0-100. It is used only for leaderboard
// ordering and is never persisted.
//
// Compared to a plain net-votes sort it penalizes small samples: one lone
// upvote scores below a hundred upvotes with a handful of downvotes.
func WilsonScore(up, down int) float64 {
	n := float64(up + down)
	if n == 0 {
		return 0
	}

	p := float64(up) / n
	z := wilsonZ

	left := p + z*z/(2*n)
	right := z * math.Sqrt((p*(1-p)+z*z/(4*n))/n)
	under := 1 + z*z/n

	return (left - right) / under * 100
}
