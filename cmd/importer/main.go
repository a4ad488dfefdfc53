// Command importer copies the CSV review dataset into MySQL so the API can
// seed from SEED_SOURCE=mysql.
package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/csvseed"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().
		Str("csv", cfg.SeedCSV).
		Int("workers", cfg.ImportWorkers).
		Int("batch", cfg.ImportBatch).
		Msg("importer starting")

	reviews, err := csvseed.File{Path: cfg.SeedCSV}.ListReviews(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read csv failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	sem := semaphore.NewWeighted(int64(max(cfg.ImportWorkers, 1)))
	var wg sync.WaitGroup
	var failed atomic.Int64

	for i, batch := range batches(reviews, cfg.ImportBatch) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, rs []domain.Review) {
			defer wg.Done()
			defer sem.Release(1)

			if err := repo.UpsertReviews(ctx, rs); err != nil {
				failed.Add(int64(len(rs)))
				log.Warn().Int("batch", n).Int("rows", len(rs)).Err(err).Msg("batch failed")
				return
			}
			log.Debug().Int("batch", n).Int("rows", len(rs)).Msg("batch ok")
		}(i, batch)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Fatal().Int64("rows", n).Msg("import finished with failures")
	}
	log.Info().Int("rows", len(reviews)).Msg("import completed")
}

// batches splits rs into consecutive chunks of at most size rows.
func batches(rs []domain.Review, size int) [][]domain.Review {
	if size <= 0 {
		size = len(rs)
	}
	var out [][]domain.Review
	for len(rs) > 0 {
		n := min(size, len(rs))
		out = append(out, rs[:n])
		rs = rs[n:]
	}
	return out
}
