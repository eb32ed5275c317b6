package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/wallet"
)

// blackjackShoeDecks is the number of 52-card sets in the shoe.
const blackjackShoeDecks = 6

// BlackjackAction is a player decision at a blackjack decision point.
type BlackjackAction int

const (
	ActionHit BlackjackAction = iota
	ActionStand
	ActionDouble
)

func (a BlackjackAction) String() string {
	return [...]string{"hit", "stand", "double"}[a]
}

// BlackjackView is what the player sees at a decision point: their own hand
// and the dealer's up card. The hole card stays hidden until the dealer turn.
type BlackjackView struct {
	Player    []deck.Card
	DealerUp  deck.Card
	Total     int
	CanDouble bool
}

// BlackjackDecider supplies the player's action at each decision point.
// Doubling is only offered on the first decision and only when the balance
// covers a second stake.
type BlackjackDecider func(view BlackjackView) (BlackjackAction, error)

// BlackjackOutcome records a settled blackjack round.
type BlackjackOutcome struct {
	RoundID     uuid.UUID
	Player      []deck.Card
	Dealer      []deck.Card
	PlayerTotal int
	DealerTotal int
	Result      Result
	Wagered     float64
	Payout      float64
}

// HandTotal computes the blackjack value of a hand. Ranks of ten and above
// count ten; aces count one, then are promoted to eleven one at a time while
// the total stays at or under 21.
func HandTotal(cards []deck.Card) int {
	total, aces := 0, 0
	for _, c := range cards {
		if c.Rank >= deck.Ten {
			total += 10
		} else {
			total += int(c.Rank)
		}
		if c.IsAce() {
			aces++
		}
	}
	for aces > 0 && total+10 <= 21 {
		total += 10
		aces--
	}
	return total
}

// IsNatural reports whether a hand is a two-card 21.
func IsNatural(cards []deck.Card) bool {
	return len(cards) == 2 && HandTotal(cards) == 21
}

// isSoftSeventeen reports whether a hand totals 17 with an ace counted as
// eleven.
func isSoftSeventeen(cards []deck.Card) bool {
	hard, hasAce := 0, false
	for _, c := range cards {
		if c.Rank >= deck.Ten {
			hard += 10
		} else {
			hard += int(c.Rank)
		}
		if c.IsAce() {
			hasAce = true
		}
	}
	return hasAce && hard+10 == 17
}

// dealerDraws implements the H17 rule: the dealer hits below 17 and on
// soft 17, and stands otherwise.
func dealerDraws(cards []deck.Card) bool {
	total := HandTotal(cards)
	return total < 17 || (total == 17 && isSoftSeventeen(cards))
}

// PlayBlackjack runs one round of 6-deck blackjack (dealer hits soft 17, no
// splits or insurance). The stake is debited before any card is drawn and the
// settlement credited once the round is fully determined.
func PlayBlackjack(w *wallet.Wallet, seed string, nonce uint64, stake float64, limits Limits, decide BlackjackDecider) (*BlackjackOutcome, error) {
	if err := limits.ValidateStake(stake, w.Balance()); err != nil {
		return nil, err
	}
	if err := w.Debit(stake); err != nil {
		return nil, err
	}
	wagered := stake

	stream := fairness.NewStream(seed, fmt.Sprintf("%s-%d", blackjackTag, nonce))
	shoe := deck.New(blackjackShoeDecks)

	// Alternating deal: player, dealer, player, dealer.
	player := make([]deck.Card, 0, 8)
	dealer := make([]deck.Card, 0, 8)
	for i := 0; i < 2; i++ {
		card, err := shoe.Draw(stream)
		if err != nil {
			return nil, err
		}
		player = append(player, card)
		if card, err = shoe.Draw(stream); err != nil {
			return nil, err
		}
		dealer = append(dealer, card)
	}

	outcome := &BlackjackOutcome{
		RoundID: newRoundID(),
		Wagered: wagered,
	}

	// Naturals resolve immediately, before any further drawing.
	playerNatural, dealerNatural := IsNatural(player), IsNatural(dealer)
	if playerNatural || dealerNatural {
		switch {
		case playerNatural && !dealerNatural:
			outcome.Result = Natural
			outcome.Payout = RoundMoney(stake * 2.5)
		case dealerNatural && !playerNatural:
			outcome.Result = Lose
		default:
			outcome.Result = Push
			outcome.Payout = stake
		}
		return settleBlackjack(w, outcome, player, dealer)
	}

	firstDecision := true
	for HandTotal(player) <= 21 {
		canDouble := firstDecision && w.Balance() >= stake
		action, err := decide(BlackjackView{
			Player:    player,
			DealerUp:  dealer[0],
			Total:     HandTotal(player),
			CanDouble: canDouble,
		})
		if err != nil {
			return nil, fmt.Errorf("player decision: %w", err)
		}

		if action == ActionHit {
			card, err := shoe.Draw(stream)
			if err != nil {
				return nil, err
			}
			player = append(player, card)
			firstDecision = false
			continue
		}
		if action == ActionDouble {
			if !canDouble {
				return nil, fmt.Errorf("%w: double not permitted", ErrInvalidSelection)
			}
			if err := w.Debit(stake); err != nil {
				return nil, err
			}
			wagered += stake
			card, err := shoe.Draw(stream)
			if err != nil {
				return nil, err
			}
			player = append(player, card)
		} else if action != ActionStand {
			return nil, fmt.Errorf("%w: unknown action %d", ErrInvalidSelection, action)
		}
		break
	}
	outcome.Wagered = wagered

	// The dealer plays out the hand even into a busted player, so the full
	// draw sequence stays reproducible for verifiers.
	for dealerDraws(dealer) {
		card, err := shoe.Draw(stream)
		if err != nil {
			return nil, err
		}
		dealer = append(dealer, card)
	}

	playerTotal, dealerTotal := HandTotal(player), HandTotal(dealer)
	switch {
	case playerTotal > 21:
		outcome.Result = Lose
	case dealerTotal > 21 || playerTotal > dealerTotal:
		outcome.Result = Win
		outcome.Payout = wagered * 2
	case playerTotal < dealerTotal:
		outcome.Result = Lose
	default:
		outcome.Result = Push
		outcome.Payout = wagered
	}
	return settleBlackjack(w, outcome, player, dealer)
}

func settleBlackjack(w *wallet.Wallet, outcome *BlackjackOutcome, player, dealer []deck.Card) (*BlackjackOutcome, error) {
	outcome.Player = player
	outcome.Dealer = dealer
	outcome.PlayerTotal = HandTotal(player)
	outcome.DealerTotal = HandTotal(dealer)
	if outcome.Payout > 0 {
		if err := w.Credit(outcome.Payout); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}
