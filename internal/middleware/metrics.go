package middleware

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests served, by method and status.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// Metrics records a counter and latency histogram for every request. Labels
// are limited to method and status to keep cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.status)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// CachedPromHandler serves the Prometheus exposition from a cache refreshed
// at a fixed interval, so frequent scrapes do not re-gather metrics on every
// request.
type CachedPromHandler struct {
	mu    sync.RWMutex
	cache []byte
	ttl   time.Duration
	h     http.Handler
}

// NewCachedPromHandler starts a background refresh loop that stops when ctx
// is cancelled. ttl should not exceed the scrape interval.
func NewCachedPromHandler(ctx context.Context, gatherer prometheus.Gatherer, ttl time.Duration) *CachedPromHandler {
	c := &CachedPromHandler{
		ttl: ttl,
		h:   promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
	go c.refreshLoop(ctx)
	return c
}

func (c *CachedPromHandler) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	// promhttp dereferences the request, so the refresh must present a real
	// one. Built without Accept-Encoding, which keeps the exposition
	// uncompressed.
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	if err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var buf bytes.Buffer
			rec := &expositionRecorder{buf: &buf, header: make(http.Header)}
			c.h.ServeHTTP(rec, req.WithContext(ctx))

			c.mu.Lock()
			c.cache = buf.Bytes()
			c.mu.Unlock()
		}
	}
}

func (c *CachedPromHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Right after startup the cache is still empty; gather live.
	if len(c.cache) == 0 {
		c.h.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(c.cache)
}

// expositionRecorder redirects promhttp output into a buffer. The header map
// must be persistent so promhttp's writes to it are not discarded; status
// codes are ignored because a successful gather is always 200.
type expositionRecorder struct {
	buf    *bytes.Buffer
	header http.Header
}

func (rr *expositionRecorder) Write(b []byte) (int, error) { return rr.buf.Write(b) }
func (rr *expositionRecorder) Header() http.Header         { return rr.header }
func (rr *expositionRecorder) WriteHeader(statusCode int)  {}
