package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	couponValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupon_validations_total",
			Help: "Coupon application attempts by outcome code.",
		},
		[]string{"result"},
	)

	flashSaleActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flash_sale_active",
			Help: "1 while a flash-sale window is open.",
		},
	)

	checkoutIntentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_intents_total",
			Help: "Order intents assembled at checkout.",
		},
	)

	ordersPlacedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Order placement attempts by outcome code.",
		},
		[]string{"result"},
	)

	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by operation and outcome code.",
		},
		[]string{"operation", "result"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_sessions_active",
			Help: "Cart sessions currently held in memory.",
		},
	)
)

// ResultOK labels successful outcomes; failures are labelled with their error code.
const ResultOK = "ok"

func ObserveCouponValidation(result string) {
	couponValidationsTotal.WithLabelValues(result).Inc()
}

func SetFlashSaleActive(active bool) {
	if active {
		flashSaleActive.Set(1)
	} else {
		flashSaleActive.Set(0)
	}
}

func IncCheckoutIntents() {
	checkoutIntentsTotal.Inc()
}

func ObserveOrderPlaced(result string) {
	ordersPlacedTotal.WithLabelValues(result).Inc()
}

func ObserveCartMutation(operation, result string) {
	cartMutationsTotal.WithLabelValues(operation, result).Inc()
}

func SetBreakerState(name string, state int) {
	breakerState.WithLabelValues(name).Set(float64(state))
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency. Paths are labelled by the
// mux pattern so cart line IDs do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {
			pathPattern := r.Pattern
			if pathPattern == "" {
				pathPattern = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
