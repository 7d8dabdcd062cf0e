package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Runner drives the analyze endpoint once per record. Failures are counted
// and skipped, never retried; the batch always runs to the end.
type Runner struct {
	endpoint string
	hc       *http.Client
	limiter  *rate.Limiter
	workers  int
}

// NewRunner paces requests at one per delay. workers > 1 opts into bounded
// fan-out; the default of 1 keeps the batch strictly sequential.
func NewRunner(endpoint string, delay, timeout time.Duration, workers int) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if workers <= 0 {
		workers = 1
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if delay > 0 {
		lim = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Runner{
		endpoint: endpoint,
		hc:       &http.Client{Timeout: timeout},
		limiter:  lim,
		workers:  workers,
	}
}

// Result is the outcome for a single record.
type Result struct {
	Record         Record
	Score          float64
	Magnitude      float64
	Classification string
	Err            error
}

func (r Result) OK() bool { return r.Err == nil }

func (r *Runner) Run(ctx context.Context, recs []Record) []Result {
	results := make([]Result, len(recs))

	if r.workers == 1 {
		for i, rec := range recs {
			if err := r.limiter.Wait(ctx); err != nil {
				results[i] = Result{Record: rec, Err: err}
				continue
			}
			results[i] = r.send(ctx, rec)
			logResult(results[i])
		}
		return results
	}

	// bounded fan-out; pacing still applies through the shared limiter
	sem := semaphore.NewWeighted(int64(r.workers))
	var wg sync.WaitGroup
	for i, rec := range recs {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = Result{Record: rec, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, rec Record) {
			defer wg.Done()
			defer sem.Release(1)
			if err := r.limiter.Wait(ctx); err != nil {
				results[i] = Result{Record: rec, Err: err}
				return
			}
			results[i] = r.send(ctx, rec)
			logResult(results[i])
		}(i, rec)
	}
	wg.Wait()
	return results
}

func logResult(res Result) {
	if res.Err != nil {
		log.Warn().Str("product_id", res.Record.ProductID).Err(res.Err).Msg("analyze failed")
		return
	}
	log.Info().
		Str("product_id", res.Record.ProductID).
		Str("classification", res.Classification).
		Float64("score", res.Score).
		Msg("analyze ok")
}

func (r *Runner) send(ctx context.Context, rec Record) Result {
	body, err := json.Marshal(rec)
	if err != nil {
		return Result{Record: rec, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Record: rec, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.hc.Do(req)
	if err != nil {
		return Result{Record: rec, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Result{Record: rec, Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))}
	}

	var out struct {
		Score          float64 `json:"sentiment_score"`
		Magnitude      float64 `json:"sentiment_magnitude"`
		Classification string  `json:"sentiment_classification"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{Record: rec, Err: fmt.Errorf("decode response: %w", err)}
	}
	return Result{
		Record:         rec,
		Score:          out.Score,
		Magnitude:      out.Magnitude,
		Classification: out.Classification,
	}
}

// Summary aggregates a finished batch.
type Summary struct {
	Succeeded int
	Failed    int
	ByClass   map[string]int
	MeanScore float64
	Highest   *Result
	Lowest    *Result
}

func Summarize(results []Result) Summary {
	s := Summary{ByClass: map[string]int{}}
	var sum float64
	for i := range results {
		res := &results[i]
		if !res.OK() {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.ByClass[res.Classification]++
		sum += res.Score
		if s.Highest == nil || res.Score > s.Highest.Score {
			s.Highest = res
		}
		if s.Lowest == nil || res.Score < s.Lowest.Score {
			s.Lowest = res
		}
	}
	if s.Succeeded > 0 {
		s.MeanScore = sum / float64(s.Succeeded)
	}
	return s
}

// Print writes the plain-text batch report.
func (s Summary) Print(w io.Writer) {
	total := s.Succeeded + s.Failed
	fmt.Fprintf(w, "Processed %d reviews: %d succeeded, %d failed\n", total, s.Succeeded, s.Failed)
	if s.Succeeded == 0 {
		return
	}
	for _, label := range []string{"Positive", "Negative", "Neutral"} {
		n, ok := s.ByClass[label]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-8s %3d (%.1f%%)\n", label, n, 100*float64(n)/float64(s.Succeeded))
	}
	fmt.Fprintf(w, "Mean score: %.3f\n", s.MeanScore)
	if s.Highest != nil {
		fmt.Fprintf(w, "Highest: %s (%.3f) %q\n", s.Highest.Record.ProductID, s.Highest.Score, truncate(s.Highest.Record.ReviewText, 60))
	}
	if s.Lowest != nil {
		fmt.Fprintf(w, "Lowest:  %s (%.3f) %q\n", s.Lowest.Record.ProductID, s.Lowest.Score, truncate(s.Lowest.Record.ReviewText, 60))
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}
