// Package sentiment scores review text with VADER (github.com/jonreiter/govader).
package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"review_analyzer/internal/domain"
)

// Analyzer adapts govader to domain.SentimentScorer. The underlying lexicon
// is read-only after construction, so one Analyzer serves concurrent callers.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func New() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns VADER polarity scores. Proportions are rounded to three
// places and compound to four, as polarity_scores reports them. Blank text
// scores all zeros.
func (a *Analyzer) Score(text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return domain.Sentiment{}
	}
	s := a.vader.PolarityScores(text)
	return domain.Sentiment{
		Neg:      round(s.Negative, 3),
		Neu:      round(s.Neutral, 3),
		Pos:      round(s.Positive, 3),
		Compound: round(s.Compound, 4),
	}
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
