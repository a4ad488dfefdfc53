package domain

import "time"

// TimestampLayout is the wire and CSV format of Review.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format of the start_date/end_date query parameters.
const DateLayout = "2006-01-02"

type Review struct {
	ID        string
	Body      string
	Location  string
	Timestamp time.Time // UTC, second resolution
}

// Sentiment is a polarity score. Compound is in [-1,1], the rest in [0,1].
type Sentiment struct {
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// ScoredReview is a read-side copy of a Review with its sentiment attached.
type ScoredReview struct {
	Review
	Sentiment Sentiment
}
