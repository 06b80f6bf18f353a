package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRewardNotFound = errors.New("reward not found")
	ErrOutOfStock     = errors.New("reward out of stock")
	// ErrRedemptionNotFound covers every confirm miss: unknown token,
	// already-completed token, cancelled token. One error for all three, so
	// a token holder learns nothing about why it stopped working.
	ErrRedemptionNotFound = errors.New("redemption not found or already completed")
)

// InsufficientBalanceError reports how many points the redemption needed
// against what the user actually has.
type InsufficientBalanceError struct {
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}
