package cmd

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/brokerage"
)

type convertCmd struct {
	stdout bool
}

func (*convertCmd) Name() string { return "convert" }
func (*convertCmd) Synopsis() string {
	return "flatten a QFX/OFX download into a normalized transaction ledger"
}
func (*convertCmd) Usage() string {
	return `qfx2csv convert [-stdout] <input.qfx>

  Reads a brokerage QFX/OFX download and flattens every statement into a
  single chronological ledger with one uniform row schema across trades,
  option activity, income and cash movements. Writes
  <input>_transactions.csv and <input>_transactions.json next to the input.

Usage Examples:
# Write ledger artifacts next to the download.
$ qfx2csv convert export.qfx

# Print the CSV ledger to stdout instead.
$ qfx2csv convert -stdout export.qfx

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.stdout, "stdout", false, "print the CSV ledger to stdout instead of writing artifacts")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(errors.New("expected exactly one input file"))
	}
	input := f.Arg(0)

	export, err := parseExport(input)
	if err != nil {
		return fail(err)
	}
	ledger := brokerage.AssembleExport(export)
	logger.Info().Int("rows", ledger.Len()).Msg("ledger assembled")

	if c.stdout {
		if err := brokerage.WriteLedgerCSV(os.Stdout, ledger); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}

	err = writeArtifact(artifactPath(input, "_transactions", ".csv"), func(w io.Writer) error {
		return brokerage.WriteLedgerCSV(w, ledger)
	})
	if err != nil {
		return fail(err)
	}
	err = writeArtifact(artifactPath(input, "_transactions", ".json"), func(w io.Writer) error {
		return brokerage.WriteLedgerJSON(w, ledger)
	})
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
