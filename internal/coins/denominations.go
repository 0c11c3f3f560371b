package coins

import (
	"fmt"
	"slices"
)

// Denominations is a validated, deduplicated set of positive denominations in
// ascending order. It is always a private copy of the caller's input.
type Denominations []int

// NewDenominations validates raw and returns a normalized copy. The input
// slice is left untouched.
func NewDenominations(raw []int) (Denominations, error) {
	if len(raw) == 0 {
		return nil, ErrNoDenominations
	}

	unique := make(map[int]struct{}, len(raw))
	for _, value := range raw {
		if value <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidDenomination, value)
		}
		unique[value] = struct{}{}
	}

	out := make(Denominations, 0, len(unique))
	for value := range unique {
		out = append(out, value)
	}
	slices.Sort(out)
	return out, nil
}

// Smallest returns the smallest denomination.
func (d Denominations) Smallest() int {
	return d[0]
}

// Largest returns the largest denomination.
func (d Denominations) Largest() int {
	return d[len(d)-1]
}

// Ascending returns a copy sorted from smallest to largest.
func (d Denominations) Ascending() []int {
	return slices.Clone(d)
}

// Descending returns a copy sorted from largest to smallest.
func (d Denominations) Descending() []int {
	out := slices.Clone(d)
	slices.Reverse(out)
	return out
}

func validate(amount int, raw []int) (Denominations, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeAmount, amount)
	}
	return NewDenominations(raw)
}
