package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/bigcalc/bigint"
)

const namespace = "bigcalc"

// Result labels attached to bigcalc_evaluations_total.
const (
	ResultOK           = "ok"
	ResultDivByZero    = "division_by_zero"
	ResultShift        = "unsupported_shift"
	ResultAlloc        = "alloc"
	ResultBadOperand   = "bad_operand"
	ResultOtherFailure = "error"
)

// Collector owns a private prometheus registry with the evaluation and
// HTTP metrics of one process. It implements expr.Observer.
type Collector struct {
	registry *prometheus.Registry
	handler  http.Handler

	evaluations    *prometheus.CounterVec
	resultBits     prometheus.Histogram
	evalDuration   prometheus.Histogram
	requests       *prometheus.CounterVec
	activeRequests prometheus.Gauge
}

// NewCollector creates the collectors and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluated statements by outermost operator and result.",
		}, []string{"op", "result"}),
		resultBits: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result_bits",
			Help:      "Bit length of successful statement results.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "eval_duration_seconds",
			Help:      "Wall time of whole expression evaluations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(
		c.evaluations, c.resultBits, c.evalDuration, c.requests, c.activeRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveEval records one evaluated statement.
func (c *Collector) ObserveEval(op string, err error, result *bigint.Int) {
	label := ResultLabel(err)
	c.evaluations.WithLabelValues(op, label).Inc()
	if err == nil && result != nil {
		c.resultBits.Observe(float64(result.BitLen()))
	}
}

// ObserveDuration records the wall time of a complete evaluation.
func (c *Collector) ObserveDuration(d time.Duration) {
	c.evalDuration.Observe(d.Seconds())
}

// ObserveRequest counts a served HTTP request.
func (c *Collector) ObserveRequest(path string, code int) {
	c.requests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// IncrementActiveRequests marks the start of a request.
func (c *Collector) IncrementActiveRequests() { c.activeRequests.Inc() }

// DecrementActiveRequests marks the end of a request.
func (c *Collector) DecrementActiveRequests() { c.activeRequests.Dec() }

// WritePrometheus serves the registry in the text exposition format.
func (c *Collector) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	c.handler.ServeHTTP(w, r)
}

// ResultLabel maps an evaluation error onto a bounded label value.
func ResultLabel(err error) string {
	var ae *bigint.AllocError
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, bigint.ErrDivisionByZero):
		return ResultDivByZero
	case errors.Is(err, bigint.ErrUnsupportedShift):
		return ResultShift
	case errors.As(err, &ae):
		return ResultAlloc
	case errors.Is(err, bigint.ErrNegativeBitwiseOperand):
		return ResultBadOperand
	default:
		return ResultOtherFailure
	}
}
