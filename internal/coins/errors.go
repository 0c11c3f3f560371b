package coins

import "errors"

var (
	// ErrNegativeAmount is returned when the requested amount is below zero.
	ErrNegativeAmount = errors.New("amount must be a non-negative integer")
	// ErrNoDenominations is returned when the denomination set is empty.
	ErrNoDenominations = errors.New("denominations must contain at least one value")
	// ErrInvalidDenomination is returned when a denomination is zero or negative.
	ErrInvalidDenomination = errors.New("denominations must be positive integers")
	// ErrUnknownStrategy is returned by Lookup for names it does not know.
	ErrUnknownStrategy = errors.New("unknown strategy")
)
