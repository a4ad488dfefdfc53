package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/csvseed"
	"review_analyzer/internal/storage/memory"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// seed
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	seed, err := loadSeed(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.SeedSource).Msg("seed load failed")
	}
	log.Info().Str("source", cfg.SeedSource).Int("reviews", len(seed)).Msg("seed loaded")

	// deps
	store := memory.New(seed)
	observability.StoreSize.Set(float64(store.Len()))

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pctx, pcancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(pctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, scoring without cache")
		} else {
			cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("sentiment cache enabled")
		}
		pcancel()
	}

	q := app.NewQueryService(store, sentiment.New(), cache, cfg.CacheTTL, cfg.ScoreWorkers)
	c := app.NewReviewService(store, clockwork.NewRealClock())

	var limiter *rate.Limiter
	if cfg.WriteRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.WriteRPS), cfg.WriteBurst)
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, C: c, WriteLimiter: limiter})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func loadSeed(ctx context.Context, cfg shared.Config) ([]domain.Review, error) {
	switch cfg.SeedSource {
	case "none":
		return nil, nil
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return nil, err
		}
		return mysqlrepo.New(db).ListReviews(ctx)
	default:
		return csvseed.File{Path: cfg.SeedCSV}.ListReviews(ctx)
	}
}
