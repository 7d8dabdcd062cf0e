package mysql

import (
	"context"
	"database/sql"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// EnsureSchema creates the reviews table if missing. Used by local runs and
// the integration tests; managed deployments own their schema.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createReviewsTableSQL)
	return err
}

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ProductID,
		rv.ReviewText,
		rv.Score,
		rv.Magnitude,
		rv.Classification,
		rv.ProcessedAt,
	)
	return err
}

func (r *Repo) ListReviews(ctx context.Context, productID string, limit int) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ProductID,
			&rv.ReviewText,
			&rv.Score,
			&rv.Magnitude,
			&rv.Classification,
			&rv.ProcessedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) Summary(ctx context.Context) (domain.SummaryView, error) {
	rows, err := r.db.QueryContext(ctx, summarySQL)
	if err != nil {
		return domain.SummaryView{}, err
	}
	defer rows.Close()

	sv := domain.SummaryView{ByClass: map[string]int64{}}
	var weighted float64
	for rows.Next() {
		var label string
		var count int64
		var mean sql.NullFloat64
		if err := rows.Scan(&label, &count, &mean); err != nil {
			return domain.SummaryView{}, err
		}
		sv.ByClass[label] = count
		sv.Total += count
		if mean.Valid {
			weighted += mean.Float64 * float64(count)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.SummaryView{}, err
	}
	if sv.Total > 0 {
		sv.MeanScore = weighted / float64(sv.Total)
	}
	return sv, nil
}
