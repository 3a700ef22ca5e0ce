// Package metrics exposes Prometheus collectors for the home core.
//
// Collectors live on a private registry so tests can build independent
// instances. Every method is safe to call on a nil *Metrics, which records
// nothing.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "homecore"

// Unit execution outcomes.
const (
	ResultApplied = "applied"
	ResultNoop    = "noop"
)

// Metrics holds the collectors and the registry they are registered on.
type Metrics struct {
	registry *prometheus.Registry

	unitExecutions    *prometheus.CounterVec
	activityEntries   *prometheus.CounterVec
	sceneActivations  prometheus.Counter
	sceneInvalidation prometheus.Counter
	autoDisarms       prometheus.Counter
	eventsDropped     *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
}

// New creates a Metrics instance with Go runtime and process collectors
// already registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		unitExecutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unit_executions_total",
			Help:      "Operation unit executions by unit and result (applied or noop).",
		}, []string{"unit", "result"}),
		activityEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_entries_total",
			Help:      "Activity log entries appended, by icon type.",
		}, []string{"icon"}),
		sceneActivations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_activations_total",
			Help:      "Scenes activated.",
		}),
		sceneInvalidation: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_invalidations_total",
			Help:      "Active scenes deactivated because a targeted device changed.",
		}),
		autoDisarms: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_disarms_total",
			Help:      "Automatic disarms after the last lock was unlocked or the last camera stopped.",
		}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events dropped because a sink's buffer was full, by sink.",
		}, []string{"sink"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.unitExecutions,
		m.activityEntries,
		m.sceneActivations,
		m.sceneInvalidation,
		m.autoDisarms,
		m.eventsDropped,
		m.httpRequests,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUnit counts one operation unit execution.
func (m *Metrics) ObserveUnit(unit string, applied bool) {
	if m == nil {
		return
	}
	result := ResultNoop
	if applied {
		result = ResultApplied
	}
	m.unitExecutions.WithLabelValues(unit, result).Inc()
}

// ObserveActivity counts one activity log entry.
func (m *Metrics) ObserveActivity(icon string) {
	if m == nil {
		return
	}
	m.activityEntries.WithLabelValues(icon).Inc()
}

// ObserveSceneActivation counts one scene activation.
func (m *Metrics) ObserveSceneActivation() {
	if m == nil {
		return
	}
	m.sceneActivations.Inc()
}

// ObserveSceneInvalidations counts n scenes deactivated by a device change.
func (m *Metrics) ObserveSceneInvalidations(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sceneInvalidation.Add(float64(n))
}

// ObserveAutoDisarm counts one automatic disarm.
func (m *Metrics) ObserveAutoDisarm() {
	if m == nil {
		return
	}
	m.autoDisarms.Inc()
}

// ObserveDroppedEvent counts one event a sink could not accept.
func (m *Metrics) ObserveDroppedEvent(sink string) {
	if m == nil {
		return
	}
	m.eventsDropped.WithLabelValues(sink).Inc()
}

// ObserveHTTPRequest counts one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RegisterGaugeFunc adds a gauge whose value is read from fn at scrape time.
// Used for store sizes, the security mode and WebSocket client counts.
func (m *Metrics) RegisterGaugeFunc(name, help string, fn func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn))
}
