package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/wallet"
)

// HandSize is the number of cards in a video poker hand.
const HandSize = 5

// HandRank classifies a final video poker hand on the Jacks-or-Better 9/6
// paytable.
type HandRank int

const (
	NoWin HandRank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	StraightHand
	FlushHand
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (r HandRank) String() string {
	return [...]string{
		"No Win", "Jacks or Better", "Two Pair", "Three of a Kind",
		"Straight", "Flush", "Full House", "Four of a Kind",
		"Straight Flush", "Royal Flush",
	}[r]
}

// Multiplier returns the profit multiple for a hand rank.
func (r HandRank) Multiplier() int {
	return [...]int{0, 1, 2, 3, 4, 6, 9, 25, 50, 250}[r]
}

// HoldChooser selects which dealt positions to keep. Held cards keep their
// position; every other position is replaced from the depleted deck.
type HoldChooser func(hand []deck.Card) ([HandSize]bool, error)

// VideoPokerOutcome records a settled video poker round.
type VideoPokerOutcome struct {
	RoundID uuid.UUID
	Dealt   []deck.Card
	Held    [HandSize]bool
	Final   []deck.Card
	Rank    HandRank
	Payout  float64
}

// aceHighValue maps ranks onto 2..14 with the ace high.
func aceHighValue(r deck.Rank) int {
	if r == deck.Ace {
		return 14
	}
	return int(r)
}

func rankCounts(hand []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, HandSize)
	for _, c := range hand {
		counts[c.Rank]++
	}
	return counts
}

func isFlush(hand []deck.Card) bool {
	for _, c := range hand[1:] {
		if c.Suit != hand[0].Suit {
			return false
		}
	}
	return true
}

// isStraight reports five consecutive ranks. The ace may sit low (A-2-3-4-5)
// or high (10-J-Q-K-A) but not wrap.
func isStraight(hand []deck.Card) bool {
	consecutive := func(vals []int) bool {
		sort.Ints(vals)
		for i := 1; i < len(vals); i++ {
			if vals[i] != vals[i-1]+1 {
				return false
			}
		}
		return true
	}

	low := make([]int, 0, HandSize)
	high := make([]int, 0, HandSize)
	for _, c := range hand {
		low = append(low, int(c.Rank))
		high = append(high, aceHighValue(c.Rank))
	}
	return consecutive(low) || consecutive(high)
}

func isRoyal(hand []deck.Card) bool {
	if !isFlush(hand) {
		return false
	}
	need := map[int]bool{10: false, 11: false, 12: false, 13: false, 14: false}
	for _, c := range hand {
		need[aceHighValue(c.Rank)] = true
	}
	for _, have := range need {
		if !have {
			return false
		}
	}
	return true
}

// Classify scores a final 5-card hand, highest match first.
func Classify(hand []deck.Card) HandRank {
	flush, straight := isFlush(hand), isStraight(hand)
	if isRoyal(hand) {
		return RoyalFlush
	}
	if flush && straight {
		return StraightFlush
	}

	counts := rankCounts(hand)
	shape := make([]int, 0, len(counts))
	for _, n := range counts {
		shape = append(shape, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(shape)))

	switch {
	case shape[0] == 4:
		return FourOfAKind
	case shape[0] == 3 && shape[1] == 2:
		return FullHouse
	case flush:
		return FlushHand
	case straight:
		return StraightHand
	case shape[0] == 3:
		return ThreeOfAKind
	case shape[0] == 2 && shape[1] == 2:
		return TwoPair
	case shape[0] == 2:
		for rank, n := range counts {
			if n == 2 && aceHighValue(rank) >= 11 {
				return JacksOrBetter
			}
		}
	}
	return NoWin
}

// PlayVideoPoker runs one round of single-deck Jacks-or-Better: deal five,
// hold any subset, replace the rest from the same deck, score the final hand.
func PlayVideoPoker(w *wallet.Wallet, seed string, nonce uint64, stake float64, limits Limits, choose HoldChooser) (*VideoPokerOutcome, error) {
	if err := limits.ValidateStake(stake, w.Balance()); err != nil {
		return nil, err
	}
	if err := w.Debit(stake); err != nil {
		return nil, err
	}

	stream := fairness.NewStream(seed, fmt.Sprintf("%s-%d", videoPokerTag, nonce))
	d := deck.New(1)

	dealt, err := d.DrawN(HandSize, stream)
	if err != nil {
		return nil, err
	}

	holds, err := choose(dealt)
	if err != nil {
		return nil, fmt.Errorf("hold selection: %w", err)
	}

	final := make([]deck.Card, HandSize)
	for i := 0; i < HandSize; i++ {
		if holds[i] {
			final[i] = dealt[i]
			continue
		}
		if final[i], err = d.Draw(stream); err != nil {
			return nil, err
		}
	}

	outcome := &VideoPokerOutcome{
		RoundID: newRoundID(),
		Dealt:   dealt,
		Held:    holds,
		Final:   final,
		Rank:    Classify(final),
	}
	if mult := outcome.Rank.Multiplier(); mult > 0 {
		outcome.Payout = RoundMoney(stake * float64(mult+1))
		if err := w.Credit(outcome.Payout); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}
