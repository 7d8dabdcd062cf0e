package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ScorerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "scorer_requests_total", Help: "Outbound scorer requests."},
		[]string{"backend", "status"},
	)
	ScorerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sentiment", Name: "scorer_request_duration_seconds",
			Help:    "Outbound scorer request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	ReviewsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "sentiment", Name: "reviews_classified_total", Help: "Reviews processed per classification."},
		[]string{"classification"},
	)
)

// Serve starts the standalone metrics listener when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ScorerRequests, ScorerLatency, CacheEvents, ReviewsClassified)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveScorer(backend string, status int, dur time.Duration) {
	ScorerRequests.WithLabelValues(backend, strconv.Itoa(status)).Inc()
	ScorerLatency.WithLabelValues(backend).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveClassification(label string) {
	ReviewsClassified.WithLabelValues(label).Inc()
}
