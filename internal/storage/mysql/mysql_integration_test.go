//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
	mysqlrepo "github.com/chalonov-academic/gcp-sentiment-analysis/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=sentiment",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/sentiment?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepo_InsertListSummary(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := []domain.Review{
		{ProductID: "P1", ReviewText: "love it", Score: 0.9, Magnitude: 0.8, Classification: domain.Positive, ProcessedAt: now.Add(-2 * time.Minute)},
		{ProductID: "P1", ReviewText: "hate it", Score: -0.7, Magnitude: 0.9, Classification: domain.Negative, ProcessedAt: now.Add(-time.Minute)},
		{ProductID: "P2", ReviewText: "it exists", Score: 0.0, Magnitude: 0.1, Classification: domain.Neutral, ProcessedAt: now},
	}
	for _, rv := range rows {
		if err := repo.InsertReview(ctx, rv); err != nil {
			t.Fatalf("InsertReview: %v", err)
		}
	}

	// duplicate append must not be rejected
	if err := repo.InsertReview(ctx, rows[0]); err != nil {
		t.Fatalf("duplicate InsertReview: %v", err)
	}

	got, err := repo.ListReviews(ctx, "P1", 10)
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows for P1 (one duplicated), got %d", len(got))
	}
	// newest first
	if got[0].ReviewText != "hate it" {
		t.Fatalf("expected newest row first, got %+v", got[0])
	}

	sv, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sv.Total != 4 {
		t.Fatalf("expected total 4, got %d", sv.Total)
	}
	if sv.ByClass[domain.Positive] != 2 || sv.ByClass[domain.Negative] != 1 || sv.ByClass[domain.Neutral] != 1 {
		t.Fatalf("per-class counts: %+v", sv.ByClass)
	}
	wantMean := (0.9 + 0.9 - 0.7 + 0.0) / 4
	if diff := sv.MeanScore - wantMean; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("mean: %v, want %v", sv.MeanScore, wantMean)
	}
}
