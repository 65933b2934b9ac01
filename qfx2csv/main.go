package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/brokerage/cmd"
)

func main() {
	// completion must run before flag parsing; Complete returns immediately
	// when not invoked by the shell.
	qfxFiles := predict.Files("*.qfx")
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"convert":   {Args: qfxFiles, Flags: map[string]complete.Predictor{"stdout": predict.Nothing}},
			"summary":   {Args: qfxFiles, Flags: map[string]complete.Predictor{"mark": predict.Nothing}},
			"positions": {Args: qfxFiles, Flags: map[string]complete.Predictor{"q": predict.Nothing}},
			"groups":    {Args: qfxFiles, Flags: map[string]complete.Predictor{"by": predict.Set{"sector", "industry", "type"}}},
			"topic":     {Args: predict.Something},
		},
	}
	completion.Complete("qfx2csv")

	// optional .env holding YAHOO_BASE_URL and QFX_CACHE_TTL
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
