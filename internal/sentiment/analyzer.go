// Package sentiment scores news text with a small financial polarity
// lexicon and aggregates per-article scores into one advisory signal.
package sentiment

import (
	"strings"

	"StockLens/internal/domain/models"
	domsvc "StockLens/internal/domain/service"
)

// positiveLabelThreshold and negativeLabelThreshold bound the neutral band.
const (
	positiveLabelThreshold = 0.2
	negativeLabelThreshold = -0.2
)

var positiveWords = map[string]struct{}{
	"gain": {}, "gains": {}, "surge": {}, "surges": {}, "rally": {}, "rallies": {},
	"rise": {}, "rises": {}, "strong": {}, "growth": {}, "profit": {}, "profits": {},
	"beat": {}, "beats": {}, "record": {}, "upgrade": {}, "upgraded": {}, "bullish": {},
	"positive": {}, "outperform": {}, "jump": {}, "jumps": {}, "soar": {}, "soars": {},
	"recovery": {}, "boost": {}, "boosts": {}, "optimistic": {}, "momentum": {},
}

var negativeWords = map[string]struct{}{
	"loss": {}, "losses": {}, "fall": {}, "falls": {}, "drop": {}, "drops": {},
	"decline": {}, "declines": {}, "weak": {}, "miss": {}, "misses": {}, "downgrade": {},
	"downgraded": {}, "bearish": {}, "negative": {}, "underperform": {}, "plunge": {},
	"plunges": {}, "slump": {}, "slumps": {}, "crash": {}, "fraud": {}, "lawsuit": {},
	"risk": {}, "risks": {}, "warning": {}, "cautious": {}, "uncertainty": {}, "selloff": {},
}

// Analyzer implements lexicon-based polarity scoring.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Score returns the polarity of text in [-1, 1]: the signed fraction of
// matched sentiment words among all matched sentiment words.
func (Analyzer) Score(text string) float64 {
	if text == "" {
		return 0
	}
	var pos, neg int
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:'\"()[]")
		if _, ok := positiveWords[w]; ok {
			pos++
			continue
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

// Aggregate averages per-article scores into one signal. Confidence
// reflects agreement between articles: 1 minus the score variance,
// floored at zero. Empty input yields a zero-confidence neutral signal.
func (a Analyzer) Aggregate(articles []models.Article) models.SentimentSignal {
	if len(articles) == 0 {
		return models.SentimentSignal{Label: models.SentimentNeutral}
	}

	var sum float64
	for _, art := range articles {
		sum += art.Sentiment
	}
	avg := sum / float64(len(articles))

	var variance float64
	for _, art := range articles {
		d := art.Sentiment - avg
		variance += d * d
	}
	variance /= float64(len(articles))

	confidence := 1 - variance
	if confidence < 0 {
		confidence = 0
	}

	label := models.SentimentNeutral
	switch {
	case avg > positiveLabelThreshold:
		label = models.SentimentPositive
	case avg < negativeLabelThreshold:
		label = models.SentimentNegative
	}

	return models.SentimentSignal{
		Score:        avg,
		Label:        label,
		Confidence:   confidence,
		ArticleCount: len(articles),
	}
}

var _ domsvc.SentimentAnalyzer = (*Analyzer)(nil)
