package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/wallet"
)

// baccaratShoeDecks is the number of 52-card sets in the shoe.
const baccaratShoeDecks = 8

// BaccaratBet is the side a baccarat stake is placed on.
type BaccaratBet int

const (
	BetPlayer BaccaratBet = iota
	BetBanker
	BetTie
)

func (b BaccaratBet) String() string {
	return [...]string{"player", "banker", "tie"}[b]
}

// ParseBaccaratBet parses a bet side name.
func ParseBaccaratBet(s string) (BaccaratBet, error) {
	switch s {
	case "player":
		return BetPlayer, nil
	case "banker":
		return BetBanker, nil
	case "tie":
		return BetTie, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBetType, s)
	}
}

// BaccaratOutcome records a settled baccarat round.
type BaccaratOutcome struct {
	RoundID     uuid.UUID
	Player      []deck.Card
	Banker      []deck.Card
	PlayerTotal int
	BankerTotal int
	Winner      BaccaratBet
	Natural     bool
	Result      Result
	Payout      float64
}

// baccaratValue gives a card's baccarat value: ace one, two through nine at
// face value, tens and court cards zero.
func baccaratValue(c deck.Card) int {
	if c.Rank >= deck.Ten {
		return 0
	}
	return int(c.Rank)
}

// baccaratTotal sums card values mod 10.
func baccaratTotal(cards []deck.Card) int {
	sum := 0
	for _, c := range cards {
		sum += baccaratValue(c)
	}
	return sum % 10
}

// bankerDraws encodes the third-card tableau. playerThird is the value of the
// player's third card, or -1 when the player stood.
func bankerDraws(bankerTotal, playerThird int) bool {
	if playerThird < 0 {
		return bankerTotal <= 5
	}
	switch {
	case bankerTotal <= 2:
		return true
	case bankerTotal == 3:
		return playerThird != 8
	case bankerTotal == 4:
		return playerThird >= 2 && playerThird <= 7
	case bankerTotal == 5:
		return playerThird >= 4 && playerThird <= 7
	case bankerTotal == 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

// PlayBaccarat runs one round of 8-deck baccarat with a 5% commission on
// winning banker bets.
func PlayBaccarat(w *wallet.Wallet, seed string, nonce uint64, bet BaccaratBet, stake float64, limits Limits) (*BaccaratOutcome, error) {
	if bet < BetPlayer || bet > BetTie {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBetType, bet)
	}
	if err := limits.ValidateStake(stake, w.Balance()); err != nil {
		return nil, err
	}
	if err := w.Debit(stake); err != nil {
		return nil, err
	}

	stream := fairness.NewStream(seed, fmt.Sprintf("%s-%d", baccaratTag, nonce))
	shoe := deck.New(baccaratShoeDecks)

	// Strict deal order: player, banker, player, banker.
	player := make([]deck.Card, 0, 3)
	banker := make([]deck.Card, 0, 3)
	for i := 0; i < 2; i++ {
		card, err := shoe.Draw(stream)
		if err != nil {
			return nil, err
		}
		player = append(player, card)
		if card, err = shoe.Draw(stream); err != nil {
			return nil, err
		}
		banker = append(banker, card)
	}

	outcome := &BaccaratOutcome{RoundID: newRoundID()}

	// A natural on either side stands pat for both.
	if baccaratTotal(player) >= 8 || baccaratTotal(banker) >= 8 {
		outcome.Natural = true
	} else {
		playerThird := -1
		if baccaratTotal(player) <= 5 {
			card, err := shoe.Draw(stream)
			if err != nil {
				return nil, err
			}
			player = append(player, card)
			playerThird = baccaratValue(card)
		}
		if bankerDraws(baccaratTotal(banker), playerThird) {
			card, err := shoe.Draw(stream)
			if err != nil {
				return nil, err
			}
			banker = append(banker, card)
		}
	}

	outcome.Player = player
	outcome.Banker = banker
	outcome.PlayerTotal = baccaratTotal(player)
	outcome.BankerTotal = baccaratTotal(banker)
	switch {
	case outcome.PlayerTotal == outcome.BankerTotal:
		outcome.Winner = BetTie
	case outcome.PlayerTotal > outcome.BankerTotal:
		outcome.Winner = BetPlayer
	default:
		outcome.Winner = BetBanker
	}

	outcome.Result, outcome.Payout = settleBaccarat(bet, outcome.Winner, stake)
	if outcome.Payout > 0 {
		if err := w.Credit(outcome.Payout); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

// settleBaccarat classifies a bet against the round winner. Tie pays 8:1;
// player pays even money; banker pays even money less the 5% commission.
// Side bets push when the round ties.
func settleBaccarat(bet, winner BaccaratBet, stake float64) (Result, float64) {
	if bet == BetTie {
		if winner == BetTie {
			return Win, RoundMoney(stake * 9)
		}
		return Lose, 0
	}
	if winner == BetTie {
		return Push, stake
	}
	if bet != winner {
		return Lose, 0
	}
	if bet == BetBanker {
		return Win, RoundMoney(stake + stake*0.95)
	}
	return Win, RoundMoney(stake * 2)
}
