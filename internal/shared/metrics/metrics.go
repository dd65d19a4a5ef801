// Package metrics keeps process counters and renders them in the Prometheus
// text exposition format.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	recommendations = newCounterVec("coreselect_recommendations_total",
		"Recommendation requests by outcome and picker source.", "outcome", "source")
	recommendLatency = newHistogram("coreselect_recommend_duration_seconds",
		"Time spent allocating, picking and saving a recommendation.",
		[]float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60})
	httpResponses = newCounterVec("coreselect_http_responses_total",
		"HTTP responses by route and status class.", "route", "class")
)

// ObserveRecommendation records one finished recommendation request.
// source is the picker name; err decides the outcome label.
func ObserveRecommendation(source string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if source == "" {
		source = "none"
	}
	recommendations.inc(outcome, source)
	recommendLatency.observe(elapsed.Seconds())
}

// ObserveResponse counts a response for route (the gin route pattern).
func ObserveResponse(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpResponses.inc(route, strconv.Itoa(status/100)+"xx")
}

// Handler serves the current values.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.Status(http.StatusOK)
		_ = Write(c.Writer)
	}
}

// Write renders every metric to w.
func Write(w io.Writer) error {
	var b strings.Builder
	recommendations.write(&b)
	recommendLatency.write(&b)
	httpResponses.write(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

type counterVec struct {
	name, help string
	labels     []string

	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec(name, help string, labels ...string) *counterVec {
	return &counterVec{name: name, help: help, labels: labels, values: make(map[string]uint64)}
}

// inc adds one to the series identified by the label values, in label order.
func (v *counterVec) inc(values ...string) {
	key := strings.Join(values, "\x00")
	v.mu.Lock()
	v.values[key]++
	v.mu.Unlock()
}

func (v *counterVec) get(values ...string) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.values[strings.Join(values, "\x00")]
}

func (v *counterVec) write(b *strings.Builder) {
	v.mu.Lock()
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	snapshot := make([]uint64, len(keys))
	for i, k := range keys {
		snapshot[i] = v.values[k]
	}
	v.mu.Unlock()

	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s counter\n", v.name, v.help, v.name)
	for i, k := range keys {
		parts := strings.Split(k, "\x00")
		pairs := make([]string, len(v.labels))
		for j, l := range v.labels {
			pairs[j] = fmt.Sprintf("%s=%q", l, parts[j])
		}
		fmt.Fprintf(b, "%s{%s} %d\n", v.name, strings.Join(pairs, ","), snapshot[i])
	}
}

// histogram keeps per-bucket (non-cumulative) counts; write accumulates them.
type histogram struct {
	name, help string
	bounds     []float64

	mu     sync.Mutex
	counts []uint64
	sum    float64
	total  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) observe(v float64) {
	if v < 0 {
		v = 0
	}
	i := sort.SearchFloat64s(h.bounds, v)
	h.mu.Lock()
	defer h.mu.Unlock()
	if i < len(h.counts) {
		h.counts[i]++
	}
	h.sum += v
	h.total++
}

func (h *histogram) write(b *strings.Builder) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, total := h.sum, h.total
	h.mu.Unlock()

	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s histogram\n", h.name, h.help, h.name)
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(b, "%s_bucket{le=%q} %d\n", h.name, strconv.FormatFloat(bound, 'g', -1, 64), cumulative)
	}
	fmt.Fprintf(b, "%s_bucket{le=\"+Inf\"} %d\n", h.name, total)
	fmt.Fprintf(b, "%s_sum %s\n", h.name, strconv.FormatFloat(sum, 'g', -1, 64))
	fmt.Fprintf(b, "%s_count %d\n", h.name, total)
}
