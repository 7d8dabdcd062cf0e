package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/observability"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/batch"
)

var cli struct {
	Endpoint  string        `help:"Analyze endpoint URL" default:"http://localhost:8080/v1/analyze" env:"ANALYZE_ENDPOINT"`
	ProductID string        `help:"Product identifier" default:"UNKNOWN"`
	Timeout   time.Duration `help:"Request timeout" default:"30s"`
	Text      string        `arg:"" help:"Review text to score"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("analyze"),
		kong.Description("Send a single review through the sentiment endpoint."))

	log.Logger = observability.NewLogger("dev")

	r := batch.NewRunner(cli.Endpoint, 0, cli.Timeout, 1)
	results := r.Run(context.Background(), []batch.Record{{ProductID: cli.ProductID, ReviewText: cli.Text}})

	res := results[0]
	if res.Err != nil {
		log.Error().Err(res.Err).Msg("analyze failed")
		os.Exit(1)
	}
	fmt.Printf("%s: %s (score %.3f, magnitude %.3f)\n",
		res.Record.ProductID, res.Classification, res.Score, res.Magnitude)
}
