package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/wallet"
)

func cards(pairs ...deck.Card) []deck.Card { return pairs }

func TestHandTotal(t *testing.T) {
	tests := []struct {
		name string
		hand []deck.Card
		want int
	}{
		{"hard twenty", cards(deck.NewCard(deck.King, deck.Clubs), deck.NewCard(deck.Queen, deck.Hearts)), 20},
		{"natural", cards(deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.King, deck.Clubs)), 21},
		{"soft seventeen", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Six, deck.Hearts)), 17},
		{"ace demoted", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Nine, deck.Hearts), deck.NewCard(deck.Five, deck.Spades)), 15},
		{"two aces", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Ace, deck.Hearts)), 12},
		{"ten and face count ten", cards(deck.NewCard(deck.Ten, deck.Clubs), deck.NewCard(deck.Jack, deck.Hearts), deck.NewCard(deck.Two, deck.Spades)), 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandTotal(tt.hand); got != tt.want {
				t.Errorf("HandTotal(%v) = %d, want %d", tt.hand, got, tt.want)
			}
		})
	}
}

func TestIsNatural(t *testing.T) {
	assert.True(t, IsNatural(cards(deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.King, deck.Clubs))))
	assert.False(t, IsNatural(cards(deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.Queen, deck.Clubs))))
	// A three-card 21 is not a natural.
	assert.False(t, IsNatural(cards(
		deck.NewCard(deck.Seven, deck.Spades),
		deck.NewCard(deck.Seven, deck.Clubs),
		deck.NewCard(deck.Seven, deck.Hearts),
	)))
}

func TestDealerDrawingRule(t *testing.T) {
	tests := []struct {
		name string
		hand []deck.Card
		want bool
	}{
		{"sixteen draws", cards(deck.NewCard(deck.Ten, deck.Clubs), deck.NewCard(deck.Six, deck.Hearts)), true},
		{"hard seventeen stands", cards(deck.NewCard(deck.Ten, deck.Clubs), deck.NewCard(deck.Seven, deck.Hearts)), false},
		{"soft seventeen draws", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Six, deck.Hearts)), true},
		{"ace-six-ten is hard seventeen", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Six, deck.Hearts), deck.NewCard(deck.Ten, deck.Spades)), false},
		{"eighteen stands", cards(deck.NewCard(deck.Ace, deck.Clubs), deck.NewCard(deck.Seven, deck.Hearts)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dealerDraws(tt.hand); got != tt.want {
				t.Errorf("dealerDraws(%v) = %v, want %v", tt.hand, got, tt.want)
			}
		})
	}
}

func standDecider(view BlackjackView) (BlackjackAction, error) {
	return ActionStand, nil
}

func TestPlayBlackjackDeterminism(t *testing.T) {
	a, err := PlayBlackjack(wallet.New(1000), "seed", 3, 20, BlackjackLimits, standDecider)
	require.NoError(t, err)
	b, err := PlayBlackjack(wallet.New(1000), "seed", 3, 20, BlackjackLimits, standDecider)
	require.NoError(t, err)

	assert.Equal(t, a.Player, b.Player)
	assert.Equal(t, a.Dealer, b.Dealer)
	assert.Equal(t, a.Result, b.Result)
	assert.Equal(t, a.Payout, b.Payout)
}

func TestPlayBlackjackWalletArithmetic(t *testing.T) {
	for nonce := uint64(0); nonce < 25; nonce++ {
		w := wallet.New(1000)
		outcome, err := PlayBlackjack(w, "seed", nonce, 20, BlackjackLimits, standDecider)
		require.NoError(t, err)

		require.GreaterOrEqual(t, outcome.Payout, 0.0)
		assert.InDelta(t, 1000-outcome.Wagered+outcome.Payout, w.Balance(), 1e-9,
			"nonce %d: balance must equal start - wagered + payout", nonce)

		switch outcome.Result {
		case Win:
			assert.Equal(t, outcome.Wagered*2, outcome.Payout)
		case Natural:
			assert.Equal(t, outcome.Wagered*2.5, outcome.Payout)
		case Push:
			assert.Equal(t, outcome.Wagered, outcome.Payout)
		case Lose:
			assert.Zero(t, outcome.Payout)
		}
	}
}

func TestPlayBlackjackDouble(t *testing.T) {
	decider := func(view BlackjackView) (BlackjackAction, error) {
		if view.CanDouble {
			return ActionDouble, nil
		}
		return ActionStand, nil
	}

	w := wallet.New(1000)
	outcome, err := PlayBlackjack(w, "seed", 11, 50, BlackjackLimits, decider)
	require.NoError(t, err)

	if outcome.Result == Natural || IsNatural(outcome.Dealer) {
		t.Skip("naturals resolve before a decision point")
	}

	// Doubling draws exactly one card and doubles the wager.
	assert.Equal(t, 100.0, outcome.Wagered)
	assert.Len(t, outcome.Player, 3)
	assert.InDelta(t, 1000-outcome.Wagered+outcome.Payout, w.Balance(), 1e-9)
}

func TestPlayBlackjackDoubleRequiresBalance(t *testing.T) {
	sawDoubleOffered := false
	decider := func(view BlackjackView) (BlackjackAction, error) {
		sawDoubleOffered = sawDoubleOffered || view.CanDouble
		return ActionStand, nil
	}

	// Balance covers the stake but not a second one.
	w := wallet.New(30)
	_, err := PlayBlackjack(w, "seed", 2, 25, BlackjackLimits, decider)
	require.NoError(t, err)
	assert.False(t, sawDoubleOffered)
}

func TestPlayBlackjackStakeValidation(t *testing.T) {
	tests := []struct {
		name  string
		stake float64
	}{
		{"below minimum", 1},
		{"above maximum", 600},
		{"over balance", 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := wallet.New(400)
			_, err := PlayBlackjack(w, "seed", 0, tt.stake, BlackjackLimits, standDecider)
			require.ErrorIs(t, err, ErrInvalidStake)
			assert.Equal(t, 400.0, w.Balance(), "aborted round must leave the stake untouched")
		})
	}
}

func TestPlayBlackjackBustEndsTurn(t *testing.T) {
	hits := 0
	decider := func(view BlackjackView) (BlackjackAction, error) {
		hits++
		return ActionHit, nil
	}

	w := wallet.New(1000)
	outcome, err := PlayBlackjack(w, "seed", 17, 20, BlackjackLimits, decider)
	require.NoError(t, err)

	// Hitting forever must terminate by bust (or a natural that skipped the
	// decision loop entirely).
	if outcome.Result != Natural && outcome.PlayerTotal <= 21 {
		t.Fatalf("always-hit player ended with total %d, result %s", outcome.PlayerTotal, outcome.Result)
	}
	if outcome.PlayerTotal > 21 {
		assert.Equal(t, Lose, outcome.Result)
		assert.Zero(t, outcome.Payout)
	}
}
