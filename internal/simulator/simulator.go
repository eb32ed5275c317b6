// Package simulator plays many non-interactive rounds to measure return to
// player. Rounds are fanned out across workers; each round remains
// single-threaded and owns its deck and stream exclusively.
package simulator

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/game"
	"github.com/lox/fairdeal/internal/wallet"
)

// Config controls a simulation run.
type Config struct {
	Game    string
	Rounds  int
	Stake   float64
	Workers int
	Seed    string
}

// Report summarises a simulation run.
type Report struct {
	Game       string
	Rounds     int
	Wagered    float64
	Returned   float64
	RTP        float64
	MeanPayout float64
	StdDev     float64
}

// roundResult holds the money moved by one round.
type roundResult struct {
	wagered float64
	payout  float64
}

// Run plays cfg.Rounds rounds of the configured game with fixed strategies
// (banker bet, red bet, stand on the deal, hold nothing) and reports the
// realised RTP.
func Run(cfg Config) (*Report, error) {
	if cfg.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", cfg.Rounds)
	}
	play, err := strategyFor(cfg.Game)
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Stake <= 0 {
		cfg.Stake = 5
	}

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan roundResult, cfg.Rounds)
	nonces := make(chan uint64)

	g.Go(func() error {
		defer close(nonces)
		for n := uint64(0); n < uint64(cfg.Rounds); n++ {
			select {
			case nonces <- n:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for nonce := range nonces {
				result, err := play(cfg.Seed, nonce, cfg.Stake)
				if err != nil {
					return fmt.Errorf("round %d: %w", nonce, err)
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	report := &Report{Game: cfg.Game, Rounds: cfg.Rounds}
	payouts := make([]float64, 0, cfg.Rounds)
	for r := range results {
		report.Wagered += r.wagered
		report.Returned += r.payout
		payouts = append(payouts, r.payout)
	}
	if report.Wagered > 0 {
		report.RTP = report.Returned / report.Wagered
	}
	if report.MeanPayout, err = stats.Mean(payouts); err != nil {
		return nil, err
	}
	if report.StdDev, err = stats.StandardDeviation(payouts); err != nil {
		return nil, err
	}
	return report, nil
}

type playFunc func(seed string, nonce uint64, stake float64) (roundResult, error)

func strategyFor(name string) (playFunc, error) {
	switch name {
	case "baccarat":
		return playBaccarat, nil
	case "roulette":
		return playRoulette, nil
	case "blackjack":
		return playBlackjack, nil
	case "videopoker":
		return playVideoPoker, nil
	default:
		return nil, fmt.Errorf("unknown game %q", name)
	}
}

// Each simulated round gets a wallet holding exactly the stake so engine
// debits cannot fail and the payout is whatever is left plus winnings.

func playBaccarat(seed string, nonce uint64, stake float64) (roundResult, error) {
	w := wallet.New(stake)
	outcome, err := game.PlayBaccarat(w, seed, nonce, game.BetBanker, stake, game.BaccaratLimits)
	if err != nil {
		return roundResult{}, err
	}
	return roundResult{wagered: stake, payout: outcome.Payout}, nil
}

func playRoulette(seed string, nonce uint64, stake float64) (roundResult, error) {
	w := wallet.New(stake)
	outcome, err := game.PlayRoulette(w, seed, nonce, []game.RouletteBet{
		{Type: game.Red, Amount: stake},
	}, game.RouletteLimits)
	if err != nil {
		return roundResult{}, err
	}
	return roundResult{wagered: stake, payout: outcome.TotalPayout}, nil
}

func playBlackjack(seed string, nonce uint64, stake float64) (roundResult, error) {
	// Dealer-mimic strategy: hit below 17, otherwise stand. Never doubles, so
	// a stake-sized wallet suffices.
	mimic := func(view game.BlackjackView) (game.BlackjackAction, error) {
		if view.Total < 17 {
			return game.ActionHit, nil
		}
		return game.ActionStand, nil
	}

	w := wallet.New(stake)
	outcome, err := game.PlayBlackjack(w, seed, nonce, stake, game.BlackjackLimits, mimic)
	if err != nil {
		return roundResult{}, err
	}
	return roundResult{wagered: outcome.Wagered, payout: outcome.Payout}, nil
}

func playVideoPoker(seed string, nonce uint64, stake float64) (roundResult, error) {
	holdNothing := func(hand []deck.Card) ([game.HandSize]bool, error) {
		return [game.HandSize]bool{}, nil
	}

	w := wallet.New(stake)
	outcome, err := game.PlayVideoPoker(w, seed, nonce, stake, game.VideoPokerLimits, holdNothing)
	if err != nil {
		return roundResult{}, err
	}
	return roundResult{wagered: stake, payout: outcome.Payout}, nil
}
