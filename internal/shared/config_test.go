package shared_test

import (
	"testing"
	"time"

	"review_analyzer/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "SEED_SOURCE", "REDIS_ADDR", "CACHE_TTL_SECONDS", "WRITE_RPS"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.HTTPAddr != ":8000" {
		t.Fatalf("default addr: %q", c.HTTPAddr)
	}
	if c.SeedSource != "csv" || c.RedisAddr != "" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.CacheTTL != 15*time.Minute || c.WriteRPS != 20 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEED_SOURCE", "mysql")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("WRITE_RPS", "2.5")

	c := shared.Load()
	if c.HTTPAddr != ":9090" || c.SeedSource != "mysql" || c.CacheTTL != time.Minute || c.WriteRPS != 2.5 {
		t.Fatalf("overrides not applied: %+v", c)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("SEED_SOURCE", "s3")

	c := shared.Load()
	if c.HTTPAddr != ":8000" || c.SeedSource != "csv" {
		t.Fatalf("expected fallbacks, got %+v", c)
	}
}
