package game

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the casino configuration file
type Config struct {
	StartingBalance float64       `hcl:"starting_balance,optional"`
	Tables          []TableConfig `hcl:"table,block"`
}

// TableConfig overrides the stake limits for one game
type TableConfig struct {
	Game string  `hcl:"game,label"`
	Min  float64 `hcl:"min"`
	Max  float64 `hcl:"max"`
}

// DefaultConfig returns the default casino configuration
func DefaultConfig() *Config {
	return &Config{
		StartingBalance: 1000,
		Tables: []TableConfig{
			{Game: "blackjack", Min: BlackjackLimits.Min, Max: BlackjackLimits.Max},
			{Game: "baccarat", Min: BaccaratLimits.Min, Max: BaccaratLimits.Max},
			{Game: "roulette", Min: RouletteLimits.Min, Max: RouletteLimits.Max},
			{Game: "videopoker", Min: VideoPokerLimits.Min, Max: VideoPokerLimits.Max},
		},
	}
}

// LoadConfig loads casino configuration from an HCL file
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", filename)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file: %s", diags.Error())
	}

	config := DefaultConfig()
	config.Tables = nil
	if diags := gohcl.DecodeBody(file.Body, nil, config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file: %s", diags.Error())
	}

	if config.StartingBalance <= 0 {
		config.StartingBalance = DefaultConfig().StartingBalance
	}
	for _, table := range config.Tables {
		if table.Min <= 0 || table.Max < table.Min {
			return nil, fmt.Errorf("table %q: invalid limits min=%v max=%v", table.Game, table.Min, table.Max)
		}
	}
	return config, nil
}

// LimitsFor returns the configured limits for a game, falling back to the
// game's built-in defaults.
func (c *Config) LimitsFor(game string) Limits {
	for _, table := range c.Tables {
		if table.Game == game {
			return Limits{Min: table.Min, Max: table.Max}
		}
	}
	switch game {
	case "blackjack":
		return BlackjackLimits
	case "baccarat":
		return BaccaratLimits
	case "roulette":
		return RouletteLimits
	default:
		return VideoPokerLimits
	}
}
