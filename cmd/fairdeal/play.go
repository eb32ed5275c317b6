package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/fairdeal/internal/deck"
	"github.com/lox/fairdeal/internal/fairness"
	"github.com/lox/fairdeal/internal/game"
	"github.com/lox/fairdeal/internal/wallet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F87")).
			Padding(0, 1).
			Bold(true)

	winStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	loseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type PlayCmd struct {
	Seed    string  `env:"FAIRDEAL_SEED" help:"Session seed (hex); generated when empty"`
	Balance float64 `help:"Override the configured starting balance"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := cli.casinoConfig()
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == "" {
		if seed, err = fairness.NewSeed(); err != nil {
			return err
		}
	}

	balance := cfg.StartingBalance
	if c.Balance > 0 {
		balance = c.Balance
	}

	sh := &shell{
		reader: bufio.NewReader(os.Stdin),
		wallet: wallet.New(balance),
		cfg:    cfg,
		seed:   seed,
		logger: cli.logger(),
	}
	return sh.run()
}

// shell is the interactive adapter around the pure engines: it collects and
// validates input, then hands already-validated bets and decision callbacks
// to the engine for the round.
type shell struct {
	reader *bufio.Reader
	wallet *wallet.Wallet
	cfg    *game.Config
	seed   string
	nonce  uint64
	logger *log.Logger
}

func (s *shell) run() error {
	fmt.Println(titleStyle.Render(" ♠ ♥ fairdeal casino ♦ ♣ "))
	fmt.Println(faintStyle.Render("fairness commitment: " + fairness.Commitment(s.seed)))
	fmt.Println()

	for {
		fmt.Printf("Balance: %s\n", money(s.wallet.Balance()))
		fmt.Println("1) Roulette  2) Blackjack  3) Baccarat  4) Video Poker  q) Quit")

		choice, err := s.ask("Choose: ")
		if err != nil {
			return s.reveal()
		}

		switch strings.ToLower(choice) {
		case "1":
			err = s.playRoulette()
		case "2":
			err = s.playBlackjack()
		case "3":
			err = s.playBaccarat()
		case "4":
			err = s.playVideoPoker()
		case "q":
			return s.reveal()
		default:
			fmt.Println("Invalid choice.")
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.reveal()
			}
			fmt.Println(loseStyle.Render(err.Error()))
		}
		fmt.Println()
	}
}

// reveal prints the session seed so completed rounds can be audited.
func (s *shell) reveal() error {
	fmt.Println()
	fmt.Println("Session seed (verify your rounds with it):")
	fmt.Println(s.seed)
	return nil
}

// nextNonce hands out the strictly increasing per-round nonce.
func (s *shell) nextNonce() uint64 {
	n := s.nonce
	s.nonce++
	return n
}

func (s *shell) playBlackjack() error {
	limits := s.cfg.LimitsFor("blackjack")
	fmt.Println(titleStyle.Render(" BLACKJACK ") + faintStyle.Render(" 6-deck, dealer hits soft 17, blackjack pays 3:2"))

	stake, err := s.askStake(limits)
	if err != nil {
		return err
	}

	decide := func(view game.BlackjackView) (game.BlackjackAction, error) {
		fmt.Printf("Dealer: %s ??\n", view.DealerUp)
		fmt.Printf("You   : %s (=%d)\n", handString(view.Player), view.Total)

		for {
			prompt := "Action [h=hit, s=stand]: "
			if view.CanDouble {
				prompt = "Action [h=hit, s=stand, d=double]: "
			}
			answer, err := s.ask(prompt)
			if err != nil {
				return 0, err
			}
			switch strings.ToLower(answer) {
			case "h":
				return game.ActionHit, nil
			case "s":
				return game.ActionStand, nil
			case "d":
				if view.CanDouble {
					return game.ActionDouble, nil
				}
			}
			fmt.Println("Invalid action.")
		}
	}

	nonce := s.nextNonce()
	outcome, err := game.PlayBlackjack(s.wallet, s.seed, nonce, stake, limits, decide)
	if err != nil {
		return err
	}
	s.logger.Debug("blackjack settled", "round", outcome.RoundID, "nonce", nonce, "result", outcome.Result, "payout", outcome.Payout)

	fmt.Printf("\nDealer reveals: %s (=%d)\n", handString(outcome.Dealer), outcome.DealerTotal)
	fmt.Printf("You           : %s (=%d)\n", handString(outcome.Player), outcome.PlayerTotal)
	switch outcome.Result {
	case game.Natural:
		fmt.Println(winStyle.Render(fmt.Sprintf("Blackjack! You win %s.", money(outcome.Payout-outcome.Wagered))))
	case game.Win:
		fmt.Println(winStyle.Render(fmt.Sprintf("You win %s.", money(outcome.Payout-outcome.Wagered))))
	case game.Push:
		fmt.Printf("Push. Your %s is returned.\n", money(outcome.Wagered))
	default:
		fmt.Println(loseStyle.Render(fmt.Sprintf("You lose %s.", money(outcome.Wagered))))
	}
	return nil
}

func (s *shell) playBaccarat() error {
	limits := s.cfg.LimitsFor("baccarat")
	fmt.Println(titleStyle.Render(" BACCARAT ") + faintStyle.Render(" 8-deck, 5% commission on banker"))

	side, err := s.ask("Bet on [banker/player/tie]: ")
	if err != nil {
		return err
	}
	bet, err := game.ParseBaccaratBet(strings.ToLower(side))
	if err != nil {
		return err
	}
	stake, err := s.askStake(limits)
	if err != nil {
		return err
	}

	nonce := s.nextNonce()
	outcome, err := game.PlayBaccarat(s.wallet, s.seed, nonce, bet, stake, limits)
	if err != nil {
		return err
	}
	s.logger.Debug("baccarat settled", "round", outcome.RoundID, "nonce", nonce, "winner", outcome.Winner, "payout", outcome.Payout)

	fmt.Printf("\nPlayer: %s (=%d)\n", handString(outcome.Player), outcome.PlayerTotal)
	fmt.Printf("Banker: %s (=%d)\n", handString(outcome.Banker), outcome.BankerTotal)
	if outcome.Natural {
		fmt.Println(faintStyle.Render("Natural — no draw."))
	}

	switch outcome.Result {
	case game.Win:
		fmt.Println(winStyle.Render(fmt.Sprintf("%s wins. You win %s.", outcome.Winner, money(outcome.Payout-stake))))
	case game.Push:
		fmt.Println("Push on tie. Stake returned.")
	default:
		fmt.Println(loseStyle.Render(fmt.Sprintf("%s wins. You lose %s.", outcome.Winner, money(stake))))
	}
	return nil
}

func (s *shell) playRoulette() error {
	limits := s.cfg.LimitsFor("roulette")
	fmt.Println(titleStyle.Render(" ROULETTE ") + faintStyle.Render(" European single zero"))

	bets, err := s.collectRouletteBets(limits)
	if err != nil {
		return err
	}

	nonce := s.nextNonce()
	outcome, err := game.PlayRoulette(s.wallet, s.seed, nonce, bets, limits)
	if err != nil {
		return err
	}
	s.logger.Debug("roulette settled", "round", outcome.RoundID, "nonce", nonce, "spin", outcome.Spin, "payout", outcome.TotalPayout)

	fmt.Printf("\nResult: %d (%s)\n", outcome.Spin, outcome.Color)
	if len(outcome.Bets) == 0 {
		fmt.Println(faintStyle.Render("(No bets were placed.)"))
		return nil
	}

	fmt.Printf("%-10s %-8s %-10s %-6s %s\n", "bet", "pick", "amount", "result", "payout")
	for _, b := range outcome.Bets {
		pick := ""
		switch b.Bet.Type {
		case game.Straight:
			pick = strconv.Itoa(b.Bet.Number)
		case game.Dozen:
			pick = strconv.Itoa(b.Bet.Bucket)
		}
		result := loseStyle.Render("LOSE")
		if b.Won {
			result = winStyle.Render("WIN ")
		}
		fmt.Printf("%-10s %-8s %-10s %-6s %s\n", b.Bet.Type, pick, money(b.Bet.Amount), result, money(b.Payout))
	}
	fmt.Printf("Paid this round: %s\n", money(outcome.TotalPayout))
	return nil
}

func (s *shell) collectRouletteBets(limits game.Limits) ([]game.RouletteBet, error) {
	fmt.Printf("Place your bets (min %s, max %s).\n", money(limits.Min), money(limits.Max))
	fmt.Println("Types: straight, red, black, odd, even, dozen. Empty type spins.")

	var bets []game.RouletteBet
	pending := 0.0
	for {
		name, err := s.ask("Bet type: ")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return bets, nil
		}

		betType, err := game.ParseRouletteBetType(strings.ToLower(name))
		if err != nil {
			fmt.Println("Invalid type.")
			continue
		}

		bet := game.RouletteBet{Type: betType}
		if betType == game.Straight {
			raw, err := s.ask("Pick a number (0-36): ")
			if err != nil {
				return nil, err
			}
			if bet.Number, err = strconv.Atoi(raw); err != nil {
				fmt.Println("Invalid number.")
				continue
			}
		}
		if betType == game.Dozen {
			raw, err := s.ask("Dozen (1=1-12, 2=13-24, 3=25-36): ")
			if err != nil {
				return nil, err
			}
			if bet.Bucket, err = strconv.Atoi(raw); err != nil {
				fmt.Println("Invalid dozen.")
				continue
			}
		}

		if bet.Amount, err = s.askMoney("Amount $: "); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, err
			}
			fmt.Println("Invalid amount.")
			continue
		}
		if err := bet.Validate(limits, s.wallet.Balance()-pending); err != nil {
			fmt.Println(err.Error())
			continue
		}

		pending += bet.Amount
		bets = append(bets, bet)
		fmt.Printf("Added %s for %s (committed: %s)\n", bet.Type, money(bet.Amount), money(pending))
	}
}

func (s *shell) playVideoPoker() error {
	limits := s.cfg.LimitsFor("videopoker")
	fmt.Println(titleStyle.Render(" VIDEO POKER ") + faintStyle.Render(" Jacks or Better 9/6"))

	stake, err := s.askStake(limits)
	if err != nil {
		return err
	}

	choose := func(hand []deck.Card) ([game.HandSize]bool, error) {
		fmt.Printf("Dealt: %s\n", handString(hand))
		fmt.Println("Positions to HOLD separated by spaces (e.g. 1 3 5). ENTER for none.")

		answer, err := s.ask("Holds: ")
		if err != nil {
			return [game.HandSize]bool{}, err
		}

		var holds [game.HandSize]bool
		for _, field := range strings.Fields(answer) {
			pos, err := strconv.Atoi(field)
			if err != nil || pos < 1 || pos > game.HandSize {
				continue
			}
			holds[pos-1] = true
		}
		return holds, nil
	}

	nonce := s.nextNonce()
	outcome, err := game.PlayVideoPoker(s.wallet, s.seed, nonce, stake, limits, choose)
	if err != nil {
		return err
	}
	s.logger.Debug("video poker settled", "round", outcome.RoundID, "nonce", nonce, "rank", outcome.Rank, "payout", outcome.Payout)

	fmt.Printf("Final: %s\n", handString(outcome.Final))
	fmt.Printf("Result: %s — %dx\n", outcome.Rank, outcome.Rank.Multiplier())
	if outcome.Payout > 0 {
		fmt.Println(winStyle.Render(fmt.Sprintf("You win %s.", money(outcome.Payout-stake))))
	} else {
		fmt.Println(loseStyle.Render("No win."))
	}
	return nil
}

func (s *shell) ask(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := s.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *shell) askMoney(prompt string) (float64, error) {
	raw, err := s.ask(prompt)
	if err != nil {
		return 0, err
	}
	return parseMoney(raw)
}

func (s *shell) askStake(limits game.Limits) (float64, error) {
	stake, err := s.askMoney(fmt.Sprintf("Bet amount (%s—%s): $", money(limits.Min), money(limits.Max)))
	if err != nil {
		return 0, err
	}
	if err := limits.ValidateStake(stake, s.wallet.Balance()); err != nil {
		return 0, err
	}
	return stake, nil
}

// parseMoney accepts "$25", "25.50" etc. and rounds to whole cents.
func parseMoney(input string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, input)

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", input)
	}
	return game.RoundMoney(n), nil
}

func handString(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func money(n float64) string {
	return fmt.Sprintf("$%.2f", n)
}
