package domain

import (
	"context"
	"errors"
)

var (
	ErrEmptyReviewText = errors.New("review_text is required")
	ErrScoringFailed   = errors.New("sentiment scoring failed")
	ErrStoreFailed     = errors.New("store append failed")
)

// Sentiment is the raw output of a scoring backend: a signed polarity score
// in [-1, 1] and a non-negative intensity magnitude.
type Sentiment struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
}

type SentimentScorer interface {
	Score(ctx context.Context, text string) (Sentiment, error)
}

type ReviewRepository interface {
	// Write path
	InsertReview(ctx context.Context, r Review) error

	// Read paths
	ListReviews(ctx context.Context, productID string, limit int) ([]Review, error)
	Summary(ctx context.Context) (SummaryView, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SummaryView aggregates everything stored so far.
type SummaryView struct {
	Total     int64            `json:"total"`
	ByClass   map[string]int64 `json:"by_classification"`
	MeanScore float64          `json:"mean_score"`
}
