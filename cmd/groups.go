package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/etnz/brokerage"
	"github.com/etnz/brokerage/renderer"
)

type groupsCmd struct {
	by string
}

func (*groupsCmd) Name() string { return "groups" }
func (*groupsCmd) Synopsis() string {
	return "roll the enriched positions up into weighted group summaries"
}
func (*groupsCmd) Usage() string {
	return `qfx2csv groups [-by <attribute>] <input.qfx>

  Partitions the enriched position snapshot by sector, industry or
  instrument type and reports each group's market value, portfolio share
  and market-value-weighted dividend yield and beta. Writes
  <input>_grouped_by_<attribute>.csv and .json next to the input and
  prints the table.

Usage Examples:
$ qfx2csv groups export.qfx
$ qfx2csv groups -by industry export.qfx

`
}

func (c *groupsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "sector", "grouping attribute: sector, industry or type")
}

func (c *groupsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(errors.New("expected exactly one input file"))
	}
	input := f.Arg(0)

	attr, err := groupAttribute(c.by)
	if err != nil {
		return fail(err)
	}

	export, err := parseExport(input)
	if err != nil {
		return fail(err)
	}
	enriched := enrichPositions(export)
	groups := brokerage.GroupBy(attr, enriched)

	suffix := "_grouped_by_" + string(attr)
	err = writeArtifact(artifactPath(input, suffix, ".csv"), func(w io.Writer) error {
		return brokerage.WriteGroupsCSV(w, attr, groups)
	})
	if err != nil {
		return fail(err)
	}
	err = writeArtifact(artifactPath(input, suffix, ".json"), func(w io.Writer) error {
		return brokerage.WriteGroupsJSON(w, groups)
	})
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.GroupsMarkdown(attr, groups, currencyOf(export)))
	return subcommands.ExitSuccess
}

func groupAttribute(name string) (brokerage.GroupAttribute, error) {
	switch name {
	case "sector":
		return brokerage.BySector, nil
	case "industry":
		return brokerage.ByIndustry, nil
	case "type", "quote_type":
		return brokerage.ByQuoteType, nil
	}
	return "", fmt.Errorf("unknown grouping attribute %q, expected sector, industry or type", name)
}
