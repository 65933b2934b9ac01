package cmd

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/google/subcommands"

	"github.com/etnz/brokerage"
	"github.com/etnz/brokerage/renderer"
)

type positionsCmd struct {
	quiet bool
}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "enrich the open positions with market data and dividend history"
}
func (*positionsCmd) Usage() string {
	return `qfx2csv positions [-q] <input.qfx>

  Reads the open positions from a QFX/OFX download and enriches each one
  with sector, industry, beta, dividend yield, analyst figures and the
  dividend cadence projected from the trailing year of payments, plus the
  dividend total that security earned in the ledger. Writes
  <input>_positions.csv and <input>_positions.json next to the input and
  prints the snapshot.

`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.quiet, "q", false, "only write artifacts, do not print the report")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(errors.New("expected exactly one input file"))
	}
	input := f.Arg(0)

	export, err := parseExport(input)
	if err != nil {
		return fail(err)
	}
	enriched := enrichPositions(export)

	err = writeArtifact(artifactPath(input, "_positions", ".csv"), func(w io.Writer) error {
		return brokerage.WritePositionsCSV(w, enriched)
	})
	if err != nil {
		return fail(err)
	}
	err = writeArtifact(artifactPath(input, "_positions", ".json"), func(w io.Writer) error {
		return brokerage.WritePositionsJSON(w, enriched)
	})
	if err != nil {
		return fail(err)
	}

	if !c.quiet {
		printMarkdown(renderer.PositionsMarkdown(enriched, currencyOf(export)))
	}
	return subcommands.ExitSuccess
}

// enrichPositions runs the snapshot pipeline: catalog and ledger from the
// export, dividend totals from the ledger, then market-data enrichment of
// every reported position.
func enrichPositions(export brokerage.Export) []brokerage.EnrichedPosition {
	catalog := brokerage.NewCatalog(export.Securities)
	ledger := brokerage.Assemble(export.Statements, catalog)
	dividends := brokerage.DividendsEarned(ledger)

	enricher := brokerage.NewEnricher(catalog, dividends, marketData(), logger)

	var positions []brokerage.Position
	for _, stmt := range export.Statements {
		positions = append(positions, stmt.Positions...)
	}
	return enricher.EnrichAll(positions)
}
