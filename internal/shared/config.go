package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	LogLevel      string
	HTTPAddr      string
	MetricsAddr   string
	SeedSource    string // csv|mysql|none
	SeedCSV       string
	MySQLDSN      string
	RedisAddr     string // empty disables the sentiment cache
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	WriteRPS      float64
	WriteBurst    int
	ScoreWorkers  int
	ImportWorkers int
	ImportBatch   int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		LogLevel:      env("LOG_LEVEL", "info"),
		HTTPAddr:      ":" + strconv.Itoa(atoi("PORT", 8000)),
		MetricsAddr:   env("METRICS_ADDR", ""),
		SeedSource:    env("SEED_SOURCE", "csv"),
		SeedCSV:       env("SEED_CSV", "data/reviews.csv"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		WriteRPS:      atof("WRITE_RPS", 20),
		WriteBurst:    atoi("WRITE_BURST", 40),
		ScoreWorkers:  atoi("SCORE_WORKERS", 8),
		ImportWorkers: atoi("IMPORT_WORKERS", 4),
		ImportBatch:   atoi("IMPORT_BATCH", 500),
	}
	switch c.SeedSource {
	case "csv", "mysql", "none":
	default:
		log.Warn().Str("seed_source", c.SeedSource).Msg("unknown SEED_SOURCE, falling back to csv")
		c.SeedSource = "csv"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
