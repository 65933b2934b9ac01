package cmd

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"

	"github.com/etnz/brokerage"
	"github.com/etnz/brokerage/renderer"
)

type summaryCmd struct {
	mark bool
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "fold the ledger into per-ticker cash-flow balances"
}
func (*summaryCmd) Usage() string {
	return `qfx2csv summary [-mark] <input.qfx>

  Sums every ledger row amount per ticker into a cash-flow balance, plus
  the unit balance over buys and sells. With -mark, tickers still holding
  units get the live value of those units added to their balance, turning
  the figure into an unrealized profit and loss.

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.mark, "mark", false, "mark still-held units to market using live prices")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(errors.New("expected exactly one input file"))
	}

	export, err := parseExport(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	ledger := brokerage.AssembleExport(export)
	summaries := brokerage.Summarize(ledger)
	if c.mark {
		summaries = brokerage.MarkToMarket(summaries, marketData(), logger)
	}

	printMarkdown(renderer.SummaryMarkdown(summaries, currencyOf(export)))
	return subcommands.ExitSuccess
}
