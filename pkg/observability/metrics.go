package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exported by the registry and its adapters.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Lookups     *prometheus.CounterVec
	Validations *prometheus.CounterVec
	Requests    *prometheus.CounterVec
	Actions     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid global state.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kefschema_lookups_total",
				Help: "Total number of action lookups, by result",
			},
			[]string{"result"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kefschema_validations_total",
				Help: "Total number of invocation validations, by action and result",
			},
			[]string{"action", "result"},
		),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kefschema_http_requests_total",
				Help: "Total number of HTTP requests, by route and status code",
			},
			[]string{"route", "code"},
		),
		Actions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kefschema_actions",
			Help: "Number of actions in the loaded registry",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.Validations, m.Requests, m.Actions)
	}
	return m
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// ObserveLookup counts a Describe call.
func (m *Metrics) ObserveLookup(found bool) {
	if m == nil {
		return
	}
	if found {
		m.Lookups.WithLabelValues("found").Inc()
		return
	}
	m.Lookups.WithLabelValues("not_found").Inc()
}

// ObserveValidation counts an invocation validation.
func (m *Metrics) ObserveValidation(action string, ok bool) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(action, result(ok)).Inc()
}

// ObserveRequest counts an HTTP response.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// SetActions records the size of the loaded registry.
func (m *Metrics) SetActions(n int) {
	if m == nil {
		return
	}
	m.Actions.Set(float64(n))
}
