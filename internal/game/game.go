// Package game implements the four casino rule engines. Each engine is a pure
// decision procedure over a fairness stream and an already-validated bet: it
// debits the stake, runs the round to completion and credits the settlement.
// All user interaction is injected as callbacks so the engines stay testable
// without an I/O harness.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrInvalidStake covers non-finite stakes, stakes outside the table
	// limits and stakes exceeding the wallet balance. Always raised before
	// any debit.
	ErrInvalidStake = errors.New("invalid stake")

	// ErrInvalidBetType is returned for an unrecognised bet variant.
	ErrInvalidBetType = errors.New("invalid bet type")

	// ErrInvalidSelection is returned for a malformed selection payload,
	// e.g. a straight bet on 40 or a double when it is not permitted.
	ErrInvalidSelection = errors.New("invalid selection")
)

// Result classifies a settled round from the player's side.
type Result int

const (
	Lose Result = iota
	Win
	Push
	Natural
)

func (r Result) String() string {
	return [...]string{"lose", "win", "push", "natural"}[r]
}

// newRoundID tags an outcome for audit logs.
func newRoundID() uuid.UUID {
	return uuid.New()
}

// Per-game stream tags. Combined with the round nonce they keep every game's
// randomness stream independent under a shared session seed.
const (
	blackjackTag  = "bj"
	baccaratTag   = "bac"
	rouletteTag   = "rl"
	videoPokerTag = "vp"
)

// StreamNonce returns the tagged nonce a game's engine scopes its stream to,
// so external verifiers can rebuild the exact stream for a round.
func StreamNonce(gameName string, nonce uint64) (string, error) {
	switch gameName {
	case "blackjack":
		return fmt.Sprintf("%s-%d", blackjackTag, nonce), nil
	case "baccarat":
		return fmt.Sprintf("%s-%d", baccaratTag, nonce), nil
	case "roulette":
		return fmt.Sprintf("%s-%d", rouletteTag, nonce), nil
	case "videopoker":
		return fmt.Sprintf("%s-%d", videoPokerTag, nonce), nil
	default:
		return "", fmt.Errorf("unknown game %q", gameName)
	}
}
