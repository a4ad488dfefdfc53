package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "cache_events_total", Help: "Cache hits/misses/sets."},
		[]string{"cache", "event"}, // event: hit|miss|set
	)
	ReviewsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "created_total", Help: "Reviews accepted by the write path."},
		[]string{"location"},
	)
	ReviewsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "rejected_total", Help: "Writes rejected by validation."},
		[]string{"reason"},
	)
	SentimentScored = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "reviews", Name: "sentiment_scored_total", Help: "Sentiment scores computed (cache misses included)."},
	)
	StoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "reviews", Name: "store_size", Help: "Reviews currently held in memory."},
	)
)

// NewMetricsServer returns a listener that exposes reg on /metrics.
func NewMetricsServer(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Serve starts a side metrics listener on addr. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return // disabled
	}
	srv := NewMetricsServer(addr, reg)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, CacheEvents, ReviewsCreated, ReviewsRejected, SentimentScored, StoreSize)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveCreated(location string, storeSize int) {
	ReviewsCreated.WithLabelValues(location).Inc()
	StoreSize.Set(float64(storeSize))
}

func ObserveRejected(err error) {
	ReviewsRejected.WithLabelValues(LabelErr(err)).Inc()
}

func ObserveScored() { SentimentScored.Inc() }

// LabelErr turns an error into a low-cardinality label value.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil {
		return LabelErr(u.Unwrap())
	}
	return err.Error()
}
