package game

import (
	"fmt"
	"math"
)

// Limits holds a table's minimum and maximum stake in dollars.
type Limits struct {
	Min float64
	Max float64
}

// Default table limits per game, matching the house rules each engine was
// written for.
var (
	BlackjackLimits  = Limits{Min: 5, Max: 500}
	BaccaratLimits   = Limits{Min: 5, Max: 1000}
	RouletteLimits   = Limits{Min: 1, Max: 500}
	VideoPokerLimits = Limits{Min: 1, Max: 25}
)

// ValidateStake performs every pre-debit check: the stake must be finite,
// within the table limits and covered by the balance. Engines call this
// before touching the wallet so an aborted round never needs a compensating
// credit.
func (l Limits) ValidateStake(amount, balance float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: not a finite amount", ErrInvalidStake)
	}
	if amount < l.Min {
		return fmt.Errorf("%w: $%.2f below table minimum $%.2f", ErrInvalidStake, amount, l.Min)
	}
	if amount > l.Max {
		return fmt.Errorf("%w: $%.2f above table maximum $%.2f", ErrInvalidStake, amount, l.Max)
	}
	if amount > balance {
		return fmt.Errorf("%w: $%.2f exceeds balance $%.2f", ErrInvalidStake, amount, balance)
	}
	return nil
}

// RoundMoney rounds to whole cents, half away from zero.
func RoundMoney(n float64) float64 {
	return math.Round(n*100) / 100
}
