package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/http_server"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/observability"
	rediscache "github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/redis"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/scorer"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/app"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/shared"
	mysqlrepo "github.com/chalonov-academic/gcp-sentiment-analysis/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)

	var sc domain.SentimentScorer
	switch cfg.ScorerBackend {
	case "remote":
		sc, err = scorer.New(cfg.SentimentBase, cfg.SentimentKey, cfg.ScorerRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize remote scorer")
		}
	default:
		sc = scorer.NewVader()
	}
	log.Info().Str("backend", cfg.ScorerBackend).Msg("scorer ready")

	cache := rediscache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	a := app.NewAnalysisService(sc, repo, cache, cfg.CacheTTL)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{A: a, Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
