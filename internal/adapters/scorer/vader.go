package scorer

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/chalonov-academic/gcp-sentiment-analysis/internal/domain"
)

// Vader is the offline scoring backend. Scores land in [-1, 1] like the
// remote API; magnitude is approximated from the non-neutral proportions
// since VADER has no separate intensity output.
type Vader struct {
	an *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{an: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(_ context.Context, text string) (domain.Sentiment, error) {
	ps := v.an.PolarityScores(NormalizeText(text))
	return domain.Sentiment{
		Score:     ps.Compound,
		Magnitude: ps.Positive + ps.Negative,
	}, nil
}

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?://[^\s)]+)\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
)

// NormalizeText flattens markdown to plain text and strips links; raw URLs
// only confuse the lexicon.
func NormalizeText(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1") // keep only the link text
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(rendered), " ")
	plain = urlPattern.ReplaceAllString(plain, "")
	return strings.Join(strings.Fields(plain), " ")
}
