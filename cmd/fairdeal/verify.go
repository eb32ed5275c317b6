package main

import (
	"fmt"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/game"
)

// VerifyCmd replays the randomness of a single round from a revealed seed so
// a player can audit what the casino dealt.
type VerifyCmd struct {
	Seed  string `required:"" help:"Revealed session seed"`
	Nonce uint64 `required:"" help:"Round nonce"`
	Game  string `enum:"blackjack,baccarat,roulette,videopoker" default:"roulette" help:"Game the round belonged to"`
	Draws int    `default:"10" help:"Number of draws to replay"`
}

func (c *VerifyCmd) Run(cli *CLI) error {
	tagged, err := game.StreamNonce(c.Game, c.Nonce)
	if err != nil {
		return err
	}

	fmt.Printf("commitment: %s\n", fairness.Commitment(c.Seed))
	fmt.Printf("stream:     sha256(seed:%s:counter)\n\n", tagged)

	floats := fairness.NewStream(c.Seed, tagged)
	for i := 0; i < c.Draws; i++ {
		fmt.Printf("float[%d] = %.12f\n", i, floats.Next())
	}
	fmt.Println()

	stream := fairness.NewStream(c.Seed, tagged)
	if c.Game == "roulette" {
		spin, err := stream.NextInt(37)
		if err != nil {
			return err
		}
		fmt.Printf("spin = %d (%s)\n", spin, game.ColorOf(spin))
		return nil
	}

	copies := 1
	switch c.Game {
	case "blackjack":
		copies = 6
	case "baccarat":
		copies = 8
	}
	shoe := deck.New(copies)

	cards, err := shoe.DrawN(c.Draws, stream)
	if err != nil {
		return err
	}
	for i, card := range cards {
		fmt.Printf("card[%d] = %s\n", i, card)
	}
	return nil
}
