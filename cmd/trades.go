package cmd

import (
	"context"
	"flag"

	"github.com/cowwoc/capi/interactivebrokers"
	"github.com/cowwoc/capi/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	symbol string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list the reconstructed trades" }
func (*tradesCmd) Usage() string {
	return `cas trades [-symbol <symbol>]

  Lists every trade of the statement in execution order, after positions have
  been reconstructed: rows crossing through a zero net position appear as two
  trades, and every trade carries the asset id of its continuously-held
  position.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Only list trades of this normalized symbol.")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	statement, err := loadStatement()
	if err != nil {
		return fail(err)
	}
	trades := statement.Trades
	if c.symbol != "" {
		var filtered []interactivebrokers.Trade
		for _, t := range trades {
			if t.Symbol == c.symbol || t.UnderlyingAsset == c.symbol {
				filtered = append(filtered, t)
			}
		}
		trades = filtered
	}
	printMarkdown(renderer.TradesMarkdown(trades))
	return subcommands.ExitSuccess
}
