package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

// AnalysisService owns the single write path: score the text, classify it,
// append one row. One request, one row; nothing is retried or deduplicated.
type AnalysisService struct {
	scorer   domain.SentimentScorer
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewAnalysisService(sc domain.SentimentScorer, r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *AnalysisService {
	return &AnalysisService{scorer: sc, repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

type AnalyzeRequest struct {
	ProductID  string
	ReviewText string
}

type AnalyzeResult struct {
	ProductID      string
	Score          float64
	Magnitude      float64
	Classification string
}

func (s *AnalysisService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResult, error) {
	if strings.TrimSpace(req.ReviewText) == "" {
		return AnalyzeResult{}, domain.ErrEmptyReviewText
	}
	productID := req.ProductID
	if productID == "" {
		productID = domain.UnknownProduct
	}

	sent, err := s.scoreWithCache(ctx, req.ReviewText)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("%w: %v", domain.ErrScoringFailed, err)
	}

	rec := domain.Review{
		ProductID:      productID,
		ReviewText:     req.ReviewText,
		Score:          sent.Score,
		Magnitude:      sent.Magnitude,
		Classification: domain.Classify(sent.Score),
		ProcessedAt:    s.now().UTC(),
	}
	if err := s.repo.InsertReview(ctx, rec); err != nil {
		return AnalyzeResult{}, fmt.Errorf("%w: %v", domain.ErrStoreFailed, err)
	}

	// raw values go to the store; the response rounds to 3 decimals
	return AnalyzeResult{
		ProductID:      rec.ProductID,
		Score:          Round3(sent.Score),
		Magnitude:      Round3(sent.Magnitude),
		Classification: rec.Classification,
	}, nil
}

// scoreWithCache is cache-aside over the scorer only. Identical text scores
// identically, so the key is a hash of the text.
func (s *AnalysisService) scoreWithCache(ctx context.Context, text string) (domain.Sentiment, error) {
	if s.cache == nil {
		return s.scorer.Score(ctx, text)
	}
	key := scoreKey(text)
	var sent domain.Sentiment
	if ok, _ := s.cache.Get(ctx, key, &sent); ok {
		return sent, nil
	}
	sent, err := s.scorer.Score(ctx, text)
	if err != nil {
		return domain.Sentiment{}, err
	}
	_ = s.cache.Set(ctx, key, sent, int(s.cacheTTL.Seconds()))
	return sent, nil
}

func scoreKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "score:" + hex.EncodeToString(sum[:])
}

func Round3(v float64) float64 { return math.Round(v*1000) / 1000 }
