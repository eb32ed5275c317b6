package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/fairdeal/internal/game"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`
	Config  string           `short:"c" type:"path" help:"Casino config file (HCL)"`

	Play     PlayCmd     `cmd:"" help:"Play casino games interactively"`
	Verify   VerifyCmd   `cmd:"" help:"Replay a round's draws from a revealed seed"`
	Simulate SimulateCmd `cmd:"" help:"Measure return-to-player over many rounds"`
}

func (cli *CLI) logger() *log.Logger {
	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

func (cli *CLI) casinoConfig() (*game.Config, error) {
	if cli.Config == "" {
		return game.DefaultConfig(), nil
	}
	return game.LoadConfig(cli.Config)
}

func main() {
	// Optional .env lets FAIRDEAL_SEED come from a dotfile.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fairdeal"),
		kong.Description("Provably-fair casino games for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
