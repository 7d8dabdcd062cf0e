package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/observability"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/batch"
)

var cli struct {
	Endpoint string        `help:"Analyze endpoint URL" default:"http://localhost:8080/v1/analyze" env:"ANALYZE_ENDPOINT"`
	CSV      string        `help:"CSV file with product_id,review_text columns; omit to use the built-in demo batch" type:"existingfile" optional:""`
	Delay    time.Duration `help:"Pause between requests" default:"1s"`
	Timeout  time.Duration `help:"Per-request timeout" default:"30s"`
	Workers  int           `help:"Concurrent requests; 1 keeps the batch strictly sequential" default:"1"`
	Env      string        `help:"Logger environment" default:"dev" env:"APP_ENV"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("batch"),
		kong.Description("Drive the sentiment endpoint with a batch of reviews and print a summary."))

	log.Logger = observability.NewLogger(cli.Env)

	recs := batch.FixtureRecords
	if cli.CSV != "" {
		var err error
		recs, err = batch.LoadCSV(cli.CSV)
		if err != nil {
			log.Fatal().Err(err).Str("path", cli.CSV).Msg("failed to load CSV")
		}
	}
	log.Info().
		Str("endpoint", cli.Endpoint).
		Int("records", len(recs)).
		Int("workers", cli.Workers).
		Msg("batch starting")

	r := batch.NewRunner(cli.Endpoint, cli.Delay, cli.Timeout, cli.Workers)
	results := r.Run(context.Background(), recs)

	batch.Summarize(results).Print(os.Stdout)
}
