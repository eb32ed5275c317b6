package main

import (
	"fmt"

	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/simulator"
)

// SimulateCmd plays many non-interactive rounds and reports the realised
// return to player.
type SimulateCmd struct {
	Game    string  `enum:"blackjack,baccarat,roulette,videopoker" default:"baccarat" help:"Game to simulate"`
	Rounds  int     `default:"10000" help:"Number of rounds to play"`
	Stake   float64 `default:"5" help:"Stake per round"`
	Workers int     `default:"4" help:"Concurrent workers"`
	Seed    string  `help:"Session seed; generated when empty"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
	logger := cli.logger()

	seed := c.Seed
	if seed == "" {
		var err error
		if seed, err = fairness.NewSeed(); err != nil {
			return err
		}
	}

	logger.Info("simulating", "game", c.Game, "rounds", c.Rounds, "stake", c.Stake, "workers", c.Workers)
	report, err := simulator.Run(simulator.Config{
		Game:    c.Game,
		Rounds:  c.Rounds,
		Stake:   c.Stake,
		Workers: c.Workers,
		Seed:    seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("game:        %s\n", report.Game)
	fmt.Printf("rounds:      %d\n", report.Rounds)
	fmt.Printf("wagered:     $%.2f\n", report.Wagered)
	fmt.Printf("returned:    $%.2f\n", report.Returned)
	fmt.Printf("rtp:         %.4f\n", report.RTP)
	fmt.Printf("mean payout: $%.4f\n", report.MeanPayout)
	fmt.Printf("stddev:      $%.4f\n", report.StdDev)
	return nil
}
