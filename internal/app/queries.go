package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
)

type QueryService struct {
	store    domain.ReviewStore
	scorer   domain.SentimentScorer
	cache    domain.Cache // optional
	cacheTTL time.Duration
	workers  int
}

// NewQueryService wires the read path. cache may be nil.
func NewQueryService(store domain.ReviewStore, scorer domain.SentimentScorer, cache domain.Cache, ttl time.Duration, workers int) *QueryService {
	if workers <= 0 {
		workers = 1
	}
	return &QueryService{store: store, scorer: scorer, cache: cache, cacheTTL: ttl, workers: workers}
}

// ListReviews filters a snapshot of the store, scores every match and
// returns them by compound score, highest first. Equal scores keep
// insertion order. The store itself is never reordered or annotated.
func (s *QueryService) ListReviews(ctx context.Context, f domain.Filter) ([]domain.ScoredReview, error) {
	matched := ApplyFilters(s.store.All(), f)

	out := make([]domain.ScoredReview, len(matched))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, r := range matched {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = domain.ScoredReview{Review: r, Sentiment: s.score(gctx, r.Body)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sentiment.Compound > out[j].Sentiment.Compound
	})
	return out, nil
}

// score consults the cache first; cache failures fall back to computing.
func (s *QueryService) score(ctx context.Context, text string) domain.Sentiment {
	if s.cache == nil {
		observability.ObserveScored()
		return s.scorer.Score(text)
	}

	key := sentimentKey(text)
	var cached domain.Sentiment
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sentiment cache get failed")
	} else if ok {
		return cached
	}

	sc := s.scorer.Score(text)
	observability.ObserveScored()
	if err := s.cache.Set(ctx, key, sc, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sentiment cache set failed")
	}
	return sc
}

func sentimentKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "sentiment:v1:" + hex.EncodeToString(sum[:])
}
