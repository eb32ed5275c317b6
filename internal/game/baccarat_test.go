package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/wallet"
)

func TestBaccaratValues(t *testing.T) {
	assert.Equal(t, 1, baccaratValue(deck.NewCard(deck.Ace, deck.Clubs)))
	assert.Equal(t, 9, baccaratValue(deck.NewCard(deck.Nine, deck.Clubs)))
	assert.Equal(t, 0, baccaratValue(deck.NewCard(deck.Ten, deck.Clubs)))
	assert.Equal(t, 0, baccaratValue(deck.NewCard(deck.King, deck.Clubs)))

	// 7 + 9 = 16 → 6 mod 10
	total := baccaratTotal(cards(deck.NewCard(deck.Seven, deck.Clubs), deck.NewCard(deck.Nine, deck.Hearts)))
	assert.Equal(t, 6, total)
}

func TestBankerTableau(t *testing.T) {
	tests := []struct {
		name        string
		bankerTotal int
		playerThird int
		want        bool
	}{
		{"player stood, banker five draws", 5, -1, true},
		{"player stood, banker six stands", 6, -1, false},
		{"total two always draws", 2, 8, true},
		{"total three draws on seven", 3, 7, true},
		{"total three stands on eight", 3, 8, false},
		{"total four draws on two", 4, 2, true},
		{"total four stands on one", 4, 1, false},
		{"total four stands on eight", 4, 8, false},
		{"total five draws on four", 5, 4, true},
		{"total five stands on three", 5, 3, false},
		{"total five draws on seven", 5, 7, true},
		{"total six draws on six", 6, 6, true},
		{"total six draws on seven", 6, 7, true},
		{"total six stands on five", 6, 5, false},
		{"total seven never draws", 7, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bankerDraws(tt.bankerTotal, tt.playerThird); got != tt.want {
				t.Errorf("bankerDraws(%d, %d) = %v, want %v", tt.bankerTotal, tt.playerThird, got, tt.want)
			}
		})
	}
}

func TestSettleBaccarat(t *testing.T) {
	tests := []struct {
		name       string
		bet        BaccaratBet
		winner     BaccaratBet
		wantResult Result
		wantPayout float64
	}{
		{"tie bet hits", BetTie, BetTie, Win, 180},
		{"tie bet misses", BetTie, BetBanker, Lose, 0},
		{"player bet wins even money", BetPlayer, BetPlayer, Win, 40},
		{"player bet pushes on tie", BetPlayer, BetTie, Push, 20},
		{"player bet loses", BetPlayer, BetBanker, Lose, 0},
		{"banker bet pays commission", BetBanker, BetBanker, Win, 39},
		{"banker bet pushes on tie", BetBanker, BetTie, Push, 20},
		{"banker bet loses", BetBanker, BetPlayer, Lose, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, payout := settleBaccarat(tt.bet, tt.winner, 20)
			assert.Equal(t, tt.wantResult, result)
			assert.Equal(t, tt.wantPayout, payout)
		})
	}
}

func TestParseBaccaratBet(t *testing.T) {
	for _, s := range []string{"player", "banker", "tie"} {
		bet, err := ParseBaccaratBet(s)
		require.NoError(t, err)
		assert.Equal(t, s, bet.String())
	}

	_, err := ParseBaccaratBet("dragon")
	require.ErrorIs(t, err, ErrInvalidBetType)
}

func TestPlayBaccaratDeterminism(t *testing.T) {
	a, err := PlayBaccarat(wallet.New(1000), "seed", 5, BetPlayer, 20, BaccaratLimits)
	require.NoError(t, err)
	b, err := PlayBaccarat(wallet.New(1000), "seed", 5, BetPlayer, 20, BaccaratLimits)
	require.NoError(t, err)

	assert.Equal(t, a.Player, b.Player)
	assert.Equal(t, a.Banker, b.Banker)
	assert.Equal(t, a.Winner, b.Winner)
}

func TestPlayBaccaratNaturalStandsPat(t *testing.T) {
	for nonce := uint64(0); nonce < 50; nonce++ {
		outcome, err := PlayBaccarat(wallet.New(1000), "seed", nonce, BetPlayer, 20, BaccaratLimits)
		require.NoError(t, err)

		if outcome.Natural {
			assert.Len(t, outcome.Player, 2, "nonce %d: naturals draw no third card", nonce)
			assert.Len(t, outcome.Banker, 2, "nonce %d: naturals draw no third card", nonce)
		}
	}
}

// A $20 banker bet from a $100 balance must settle to $119 when the banker
// wins: 100 - 20 + 20 + 20*0.95.
func TestPlayBaccaratBankerCommissionEndToEnd(t *testing.T) {
	for nonce := uint64(0); nonce < 200; nonce++ {
		w := wallet.New(100)
		outcome, err := PlayBaccarat(w, "commission-seed", nonce, BetBanker, 20, BaccaratLimits)
		require.NoError(t, err)

		if outcome.Winner != BetBanker {
			continue
		}
		assert.Equal(t, Win, outcome.Result)
		assert.Equal(t, 39.0, outcome.Payout)
		assert.Equal(t, 119.0, w.Balance())
		return
	}
	t.Fatal("no banker win found in 200 rounds")
}

func TestPlayBaccaratValidation(t *testing.T) {
	w := wallet.New(100)

	_, err := PlayBaccarat(w, "seed", 0, BaccaratBet(9), 20, BaccaratLimits)
	require.ErrorIs(t, err, ErrInvalidBetType)

	_, err = PlayBaccarat(w, "seed", 0, BetPlayer, 2000, BaccaratLimits)
	require.ErrorIs(t, err, ErrInvalidStake)

	assert.Equal(t, 100.0, w.Balance())
}
