package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

// QueryService serves the read-only aggregate views over stored rows.
type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Summary(ctx context.Context) (domain.SummaryView, error) {
	const key = "summary:all"
	var sv domain.SummaryView
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &sv); ok {
			return sv, nil
		}
	}
	sv, err := s.repo.Summary(ctx)
	if err != nil {
		return domain.SummaryView{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, sv, int(s.cacheTTL.Seconds()))
	}
	return sv, nil
}

func (s *QueryService) ListReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	key := fmt.Sprintf("reviews:%s:%d", productID, limit)
	var out []domain.Review
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	rs, err := s.repo.ListReviews(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	// copy so later calls can't mutate the cached slice
	out = make([]domain.Review, len(rs))
	copy(out, rs)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}
