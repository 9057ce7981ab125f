package domain

import "math"

const (
	// KFactor is the fixed magnitude of rating change per comparison.
	KFactor = 32
	// DefaultRating seeds items that have no materialized record.
	DefaultRating = 1000
)

// ExpectedScore is the probability-like expectation that the first
// rating beats the second. Equal ratings yield exactly 0.5.
func ExpectedScore(rA, rB float64) float64 {
	return 1 / (1 + math.Pow(10, (rB-rA)/400))
}

// UpdateRatings returns the post-comparison ratings for an outcome
// score sA awarded to the first item. Results are rounded half away
// from zero and never clamped; ratings may drift below zero.
func UpdateRatings(rA, rB float64, score Score) (float64, float64) {
	expectedA := ExpectedScore(rA, rB)
	expectedB := 1 - expectedA
	sA := float64(score)
	newRA := math.Round(rA + KFactor*(sA-expectedA))
	newRB := math.Round(rB + KFactor*((1-sA)-expectedB))
	return newRA, newRB
}
