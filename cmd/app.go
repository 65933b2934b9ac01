// Package cmd implements the CLI application turning brokerage downloads
// into analysis-ready artifacts.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/etnz/brokerage"
	"github.com/etnz/brokerage/qfx"
	"github.com/etnz/brokerage/yahoo"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&convertCmd{}, "ledger")
	c.Register(&summaryCmd{}, "ledger")

	c.Register(&positionsCmd{}, "portfolio")
	c.Register(&groupsCmd{}, "portfolio")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

const defaultCacheTTL = 15 * time.Minute

// marketData builds the Yahoo Finance client from the environment:
// YAHOO_BASE_URL overrides the endpoint host and QFX_CACHE_TTL the cache
// lifetime.
func marketData() brokerage.MarketData {
	ttl := defaultCacheTTL
	if v := os.Getenv("QFX_CACHE_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			logger.Warn().Str("QFX_CACHE_TTL", v).Msg("invalid cache TTL, using default")
		} else {
			ttl = parsed
		}
	}
	return yahoo.New(os.Getenv("YAHOO_BASE_URL"), ttl, logger)
}

// parseExport reads and parses the QFX/OFX document at path, "-" for stdin.
func parseExport(path string) (brokerage.Export, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return brokerage.Export{}, err
		}
		defer f.Close()
		r = f
	}
	return qfx.Parse(r)
}

// currencyOf returns the export's reporting currency, defaulting to USD
// when the statement did not carry one.
func currencyOf(e brokerage.Export) string {
	if e.Currency != "" {
		return e.Currency
	}
	return "USD"
}

// artifactPath derives an output file name from the input file: the input
// base without extension, a suffix naming the artifact, and the format
// extension. "input.qfx" + "_transactions" + ".csv" is
// "input_transactions.csv" next to the input.
func artifactPath(input, suffix, ext string) string {
	if input == "-" {
		input = "stdin.qfx"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + ext
}

// writeArtifact creates the artifact file and delegates to write.
func writeArtifact(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create artifact %q: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("cannot write artifact %q: %w", path, err)
	}
	logger.Info().Str("artifact", path).Msg("written")
	return nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// plain text when the renderer cannot run.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints the error and returns the failure status, the uniform error
// exit of every subcommand.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
