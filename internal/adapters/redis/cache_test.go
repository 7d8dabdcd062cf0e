package rediscache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	rediscache "github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/redis"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := rediscache.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var got domain.Sentiment
	ok, err := c.Get(ctx, "score:abc", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := domain.Sentiment{Score: 0.42, Magnitude: 1.1}
	if err := c.Set(ctx, "score:abc", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "score:abc", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("expected hit with %+v, got ok=%v %+v", want, ok, got)
	}

	if err := c.Del(ctx, "score:abc"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "score:abc", &got); ok {
		t.Fatalf("expected miss after delete")
	}
}
