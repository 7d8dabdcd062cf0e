package batch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/batch"
)

// analyzeStub answers like the real endpoint: canned score per product,
// optional hard failure for one product id.
func analyzeStub(t *testing.T, failProduct string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID  string `json:"product_id"`
			ReviewText string `json:"review_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.ProductID == failProduct {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"simulated outage"}`))
			return
		}
		score := 0.5
		label := "Positive"
		if strings.Contains(req.ReviewText, "terrible") || strings.Contains(req.ReviewText, "Worst") {
			score, label = -0.6, "Negative"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"product_id":               req.ProductID,
			"sentiment_score":          score,
			"sentiment_magnitude":      0.7,
			"sentiment_classification": label,
		})
	}
}

func TestRun_TwelveRecordsOneFailure(t *testing.T) {
	if len(batch.FixtureRecords) != 12 {
		t.Fatalf("fixture must hold 12 records, has %d", len(batch.FixtureRecords))
	}

	// fail exactly one request, the first one for SKU-1006
	var failed bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID  string `json:"product_id"`
			ReviewText string `json:"review_text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !failed && req.ProductID == "SKU-1006" {
			failed = true
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"simulated outage"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"sentiment_score":          0.5,
			"sentiment_magnitude":      0.7,
			"sentiment_classification": "Positive",
		})
	}))
	defer ts.Close()

	r := batch.NewRunner(ts.URL, 0, 0, 1) // no pacing in tests
	results := r.Run(context.Background(), batch.FixtureRecords)
	s := batch.Summarize(results)

	if s.Succeeded != 11 || s.Failed != 1 {
		t.Fatalf("expected 11 succeeded / 1 failed, got %d / %d", s.Succeeded, s.Failed)
	}
}

func TestSummarize(t *testing.T) {
	ts := httptest.NewServer(analyzeStub(t, "SKU-FAIL"))
	defer ts.Close()

	recs := []batch.Record{
		{ProductID: "A", ReviewText: "love it"},
		{ProductID: "B", ReviewText: "terrible"},
		{ProductID: "SKU-FAIL", ReviewText: "anything"},
		{ProductID: "C", ReviewText: "nice"},
	}
	r := batch.NewRunner(ts.URL, 0, 0, 1)
	s := batch.Summarize(r.Run(context.Background(), recs))

	if s.Succeeded != 3 || s.Failed != 1 {
		t.Fatalf("counts: %d / %d", s.Succeeded, s.Failed)
	}
	if s.ByClass["Positive"] != 2 || s.ByClass["Negative"] != 1 {
		t.Fatalf("per-class counts: %+v", s.ByClass)
	}
	wantMean := (0.5 - 0.6 + 0.5) / 3
	if diff := s.MeanScore - wantMean; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("mean: %v, want %v", s.MeanScore, wantMean)
	}
	if s.Highest == nil || s.Highest.Score != 0.5 {
		t.Fatalf("highest: %+v", s.Highest)
	}
	if s.Lowest == nil || s.Lowest.Record.ProductID != "B" {
		t.Fatalf("lowest: %+v", s.Lowest)
	}

	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()
	if !strings.Contains(out, "3 succeeded, 1 failed") {
		t.Fatalf("report missing counts: %q", out)
	}
	if !strings.Contains(out, "Positive") || !strings.Contains(out, "66.7%") {
		t.Fatalf("report missing per-class percentages: %q", out)
	}
	if !strings.Contains(out, "Mean score:") {
		t.Fatalf("report missing mean: %q", out)
	}
}

func TestRun_TransportFailureCounted(t *testing.T) {
	// closed server: every request fails at the transport layer
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	r := batch.NewRunner(ts.URL, 0, 0, 1)
	s := batch.Summarize(r.Run(context.Background(), []batch.Record{{ProductID: "A", ReviewText: "x"}}))
	if s.Failed != 1 || s.Succeeded != 0 {
		t.Fatalf("expected transport failure to be counted, got %+v", s)
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.csv")
	content := "product_id,review_text\nP1,\"great, love it\"\nP2,awful\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	recs, err := batch.LoadCSV(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].ProductID != "P1" || recs[0].ReviewText != "great, love it" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := batch.LoadCSV(path); err == nil {
		t.Fatalf("expected error for missing review_text column")
	}
}

func TestLoadCSV_ShortRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.csv")
	// second data row is missing the review_text field entirely
	content := "product_id,review_text\nP1,fine\nP2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := batch.LoadCSV(path)
	if err == nil {
		t.Fatalf("expected error for row without review_text")
	}
	if !strings.Contains(err.Error(), "review_text") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummaryPrint_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 80) // 2 bytes per rune
	results := []batch.Result{
		{Record: batch.Record{ProductID: "A", ReviewText: long}, Score: 0.9, Classification: "Positive"},
		{Record: batch.Record{ProductID: "B", ReviewText: "bad"}, Score: -0.5, Classification: "Negative"},
	}

	var buf bytes.Buffer
	batch.Summarize(results).Print(&buf)
	out := buf.String()

	if !strings.Contains(out, "...") {
		t.Fatalf("expected truncated review text in report: %q", out)
	}
	if !utf8.ValidString(out) {
		t.Fatalf("report contains a split rune: %q", out)
	}
	// a split rune would surface as a \x escape under %q
	if strings.Contains(out, `\x`) {
		t.Fatalf("report contains a split rune: %q", out)
	}
}
