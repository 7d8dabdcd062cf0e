package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Scoring backend: "remote" calls the hosted sentiment API,
	// "local" runs the embedded VADER analyzer.
	ScorerBackend string
	SentimentBase string
	SentimentKey  string
	ScorerRPS     int

	CacheTTL time.Duration
}

func Load() Config {
	// optional .env for local runs; real deployments use the environment
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env load failed")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/sentiment?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		ScorerBackend: env("SCORER_BACKEND", "local"),
		SentimentBase: env("SENTIMENT_BASE_URL", "https://language.example.com/v1"),
		SentimentKey:  env("SENTIMENT_API_KEY", ""),
		ScorerRPS:     atoi("SCORER_RPS", 5),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.ScorerBackend == "remote" && c.SentimentKey == "" {
		log.Warn().Msg("SENTIMENT_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
