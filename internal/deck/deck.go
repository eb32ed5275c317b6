package deck

import (
	"errors"

	"github.com/lox/fairdeal/internal/fairness"
)

// ErrDeckExhausted is returned when a draw is requested from an empty deck.
// Under correct shoe sizing it indicates a broken game invariant, not a
// user-facing condition.
var ErrDeckExhausted = errors.New("deck exhausted")

// SetSize is the number of cards in one 52-card set.
const SetSize = 52

// Deck is an ordered collection of cards drawn without replacement. It is
// owned exclusively by one in-progress round. There is no separate shuffle
// step: drawing by random index is the shuffle.
type Deck struct {
	cards []Card
}

// New builds copies concatenated 52-card sets in canonical order
// (suit-major, rank-minor).
func New(copies int) *Deck {
	d := &Deck{cards: make([]Card, 0, copies*SetSize)}
	for i := 0; i < copies; i++ {
		for suit := Clubs; suit <= Spades; suit++ {
			for rank := Ace; rank <= King; rank++ {
				d.cards = append(d.cards, NewCard(rank, suit))
			}
		}
	}
	return d
}

// Draw removes and returns the card at a stream-chosen index. Remaining-card
// order is not significant, so the last card is swapped into the hole.
func (d *Deck) Draw(stream *fairness.Stream) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	i, err := stream.NextInt(len(d.cards))
	if err != nil {
		return Card{}, err
	}

	card := d.cards[i]
	last := len(d.cards) - 1
	d.cards[i] = d.cards[last]
	d.cards = d.cards[:last]
	return card, nil
}

// DrawN draws n cards one at a time. Call order is deal order: cards[0] was
// dealt before cards[1], which matters for games with positional dealing.
func (d *Deck) DrawN(n int, stream *fairness.Stream) ([]Card, error) {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.Draw(stream)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
