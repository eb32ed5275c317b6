package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/wallet"
)

// wheelSize is the European single-zero wheel: pockets 0..36.
const wheelSize = 37

// Color is a roulette pocket color.
type Color int

const (
	Green Color = iota
	RedColor
	BlackColor
)

func (c Color) String() string {
	return [...]string{"green", "red", "black"}[c]
}

// redPockets is the red set of the standard European layout.
var redPockets = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ColorOf maps a pocket to its color. Zero is green.
func ColorOf(n int) Color {
	if n == 0 {
		return Green
	}
	if redPockets[n] {
		return RedColor
	}
	return BlackColor
}

// RouletteBetType enumerates the supported bet variants.
type RouletteBetType int

const (
	Straight RouletteBetType = iota
	Red
	Black
	Odd
	Even
	Dozen
)

func (t RouletteBetType) String() string {
	return [...]string{"straight", "red", "black", "odd", "even", "dozen"}[t]
}

// ParseRouletteBetType parses a bet type name.
func ParseRouletteBetType(s string) (RouletteBetType, error) {
	for t := Straight; t <= Dozen; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBetType, s)
}

// RouletteBet is one stake on the table. Number is the pocket for straight
// bets; Bucket selects the dozen (1: 1-12, 2: 13-24, 3: 25-36).
type RouletteBet struct {
	Type   RouletteBetType
	Number int
	Bucket int
	Amount float64
}

// Validate checks the selection payload and the stake against the table.
func (b RouletteBet) Validate(limits Limits, balance float64) error {
	switch b.Type {
	case Straight:
		if b.Number < 0 || b.Number >= wheelSize {
			return fmt.Errorf("%w: straight number %d", ErrInvalidSelection, b.Number)
		}
	case Dozen:
		if b.Bucket < 1 || b.Bucket > 3 {
			return fmt.Errorf("%w: dozen bucket %d", ErrInvalidSelection, b.Bucket)
		}
	case Red, Black, Odd, Even:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidBetType, b.Type)
	}
	return limits.ValidateStake(b.Amount, balance)
}

// payoutMultiple is the profit multiple on a winning bet; the stake is
// returned on top.
func (t RouletteBetType) payoutMultiple() float64 {
	switch t {
	case Straight:
		return 35
	case Dozen:
		return 2
	default:
		return 1
	}
}

// Wins reports whether the bet covers the spun pocket. Zero loses every
// color, parity and dozen bet.
func (b RouletteBet) Wins(spin int) bool {
	switch b.Type {
	case Straight:
		return spin == b.Number
	case Red:
		return ColorOf(spin) == RedColor
	case Black:
		return ColorOf(spin) == BlackColor
	case Odd:
		return spin != 0 && spin%2 == 1
	case Even:
		return spin != 0 && spin%2 == 0
	case Dozen:
		if spin == 0 {
			return false
		}
		return spin > (b.Bucket-1)*12 && spin <= b.Bucket*12
	default:
		return false
	}
}

// SettledBet is the per-bet result of a spin.
type SettledBet struct {
	Bet    RouletteBet
	Won    bool
	Payout float64
}

// RouletteOutcome records one spin and the settlement of every bet on it.
type RouletteOutcome struct {
	RoundID     uuid.UUID
	Spin        int
	Color       Color
	Bets        []SettledBet
	Wagered     float64
	TotalPayout float64
}

// PlayRoulette validates and debits every bet, generates a single spin and
// settles each bet against it independently. All validation happens before
// the first debit so a bad bet aborts the round with the wallet untouched.
func PlayRoulette(w *wallet.Wallet, seed string, nonce uint64, bets []RouletteBet, limits Limits) (*RouletteOutcome, error) {
	total := 0.0
	for _, b := range bets {
		if err := b.Validate(limits, w.Balance()-total); err != nil {
			return nil, err
		}
		total += b.Amount
	}
	for _, b := range bets {
		if err := w.Debit(b.Amount); err != nil {
			return nil, err
		}
	}

	stream := fairness.NewStream(seed, fmt.Sprintf("%s-%d", rouletteTag, nonce))
	spin, err := stream.NextInt(wheelSize)
	if err != nil {
		return nil, err
	}

	outcome := &RouletteOutcome{
		RoundID: newRoundID(),
		Spin:    spin,
		Color:   ColorOf(spin),
		Wagered: total,
		Bets:    make([]SettledBet, 0, len(bets)),
	}
	for _, b := range bets {
		settled := SettledBet{Bet: b}
		if b.Wins(spin) {
			settled.Won = true
			settled.Payout = RoundMoney(b.Amount * (b.Type.payoutMultiple() + 1))
			outcome.TotalPayout += settled.Payout
		}
		outcome.Bets = append(outcome.Bets, settled)
	}

	if outcome.TotalPayout > 0 {
		if err := w.Credit(outcome.TotalPayout); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}
