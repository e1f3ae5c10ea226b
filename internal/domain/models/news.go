package models

// SentimentLabel classifies an aggregated sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// SentimentSignal is the aggregated news sentiment for a symbol.
// Score is in [-1, 1], Confidence in [0, 1].
type SentimentSignal struct {
	Score        float64        `json:"score"`
	Label        SentimentLabel `json:"label"`
	Confidence   float64        `json:"confidence"`
	ArticleCount int            `json:"articleCount"`
}

// Article is a news item with its per-article polarity score.
type Article struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	PublishedAt string  `json:"publishedAt"`
	ImageURL    string  `json:"urlToImage,omitempty"`
	Sentiment   float64 `json:"sentimentScore"`
}
