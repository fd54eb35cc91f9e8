// Package metrics exposes Prometheus collectors for the webscraper service.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	crawlsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_crawls_total",
			Help: "Total number of crawl requests handled, labeled by site and outcome.",
		},
		[]string{"site", "outcome"},
	)

	crawlAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_crawl_attempts_total",
			Help: "Total number of engine attempts made, labeled by site.",
		},
		[]string{"site"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "route"},
	)
)

// SanitizeSite reduces a URL to a lowercase hostname suitable as a
// metric label. It returns "unknown" for unparseable input.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler exposing the Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveCrawl records the outcome of a fully orchestrated crawl along
// with the number of engine attempts it consumed.
func ObserveCrawl(site string, outcome string, attempts int) {
	sanitized := SanitizeSite(site)
	crawlsTotal.WithLabelValues(sanitized, outcome).Inc()
	if attempts > 0 {
		crawlAttemptsTotal.WithLabelValues(sanitized).Add(float64(attempts))
	}
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
