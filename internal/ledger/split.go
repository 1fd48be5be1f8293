package ledger

import (
	"errors"
	"math"
)

var (
	ErrNoMembers      = errors.New("must have at least one member")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrWeightMismatch = errors.New("need exactly one weight per member")
	ErrZeroWeight     = errors.New("weights must add up to more than zero")
)

// SplitEqually divides amount into equal shares rounded to minor units.
// Leftover minor units go one each to the first members, so the shares always
// add up to amount exactly.
func SplitEqually(amount float64, memberIDs []string) ([]Split, error) {
	weights := make([]float64, len(memberIDs))
	for i := range weights {
		weights[i] = 1
	}
	return SplitByWeights(amount, memberIDs, weights)
}

// SplitByWeights divides amount proportionally to weights (percentages or
// share counts), rounded to minor units with the largest-remainder method.
// Ties on the remainder favour earlier members.
func SplitByWeights(amount float64, memberIDs []string, weights []float64) ([]Split, error) {
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	if len(weights) != len(memberIDs) {
		return nil, ErrWeightMismatch
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	var totalWeight float64
	for _, w := range weights {
		if w < 0 {
			return nil, ErrNegativeAmount
		}
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil, ErrZeroWeight
	}

	totalMinor := int64(math.Round(amount * 100))
	minor := make([]int64, len(memberIDs))
	fractions := make([]float64, len(memberIDs))
	var assigned int64
	for i, w := range weights {
		exact := float64(totalMinor) * w / totalWeight
		minor[i] = int64(math.Floor(exact))
		fractions[i] = exact - float64(minor[i])
		assigned += minor[i]
	}

	for left := totalMinor - assigned; left > 0; left-- {
		best := 0
		for i := range fractions {
			if fractions[i] > fractions[best] {
				best = i
			}
		}
		minor[best]++
		fractions[best] = -1
	}

	splits := make([]Split, len(memberIDs))
	for i, id := range memberIDs {
		splits[i] = Split{MemberID: id, Share: float64(minor[i]) / 100}
	}
	return splits, nil
}
