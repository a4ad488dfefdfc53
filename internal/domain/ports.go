package domain

import (
	"context"
	"time"
)

// ReviewStore is the in-process review collection.
type ReviewStore interface {
	Append(r Review)
	All() []Review // copy, insertion order
	Len() int
}

type SentimentScorer interface {
	Score(text string) Sentiment
}

// ReviewSource yields the initial dataset loaded before serving.
type ReviewSource interface {
	ListReviews(ctx context.Context) ([]Review, error)
}

// Cache is a TTL'd value cache. Entries are content-addressed and never
// invalidated, only expired.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}

// Filter narrows a read. Nil fields are not applied.
type Filter struct {
	Location *string
	Start    *time.Time
	End      *time.Time
}
