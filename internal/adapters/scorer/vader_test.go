package scorer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/adapters/scorer"
	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

func TestVader_PositiveAndNegative(t *testing.T) {
	v := scorer.NewVader()
	ctx := context.Background()

	pos, err := v.Score(ctx, "excellent, I love it, works perfectly")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pos.Score <= 0.1 {
		t.Fatalf("expected positive score, got %v", pos.Score)
	}
	if domain.Classify(pos.Score) != domain.Positive {
		t.Fatalf("expected Positive classification, got %s", domain.Classify(pos.Score))
	}
	if pos.Magnitude < 0 {
		t.Fatalf("magnitude must be non-negative, got %v", pos.Magnitude)
	}

	neg, err := v.Score(ctx, "terrible, I hate it, complete garbage")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if neg.Score >= -0.1 {
		t.Fatalf("expected negative score, got %v", neg.Score)
	}
	if domain.Classify(neg.Score) != domain.Negative {
		t.Fatalf("expected Negative classification, got %s", domain.Classify(neg.Score))
	}
}

func TestNormalizeText(t *testing.T) {
	in := "**Great** product, see [the docs](https://example.com/docs) or https://example.com/more"
	out := scorer.NormalizeText(in)
	if strings.Contains(out, "https://") || strings.Contains(out, "](") {
		t.Fatalf("links not stripped: %q", out)
	}
	if !strings.Contains(out, "Great") || !strings.Contains(out, "the docs") {
		t.Fatalf("text content lost: %q", out)
	}
	if strings.Contains(out, "<") {
		t.Fatalf("html tags not stripped: %q", out)
	}
}
