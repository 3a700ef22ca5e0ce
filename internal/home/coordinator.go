// Package home is the coordinator of the smart home.
//
// The Coordinator is the only writer of the store. Each action runs one or
// more operation units, then enforces the cross-entity rules:
//
//   - Scene invalidation: any change to a device outside a scene activation
//     deactivates every scene that targets the device.
//   - Auto-disarm: after an unlock or a stopped recording, if no lock is
//     locked and no camera is recording, the system is disarmed.
//   - Audit: user-visible actions append one entry to the activity log.
//
// Mutating actions are serialised by one mutex, so a device write and the
// rules evaluated after it are never interleaved with another action.
// Queries do not take it. Events are delivered to listeners after the
// mutex is released.
package home

import (
	"sync"
	"time"

	"github.com/nerrad567/homecore/internal/command"
	"github.com/nerrad567/homecore/internal/metrics"
	"github.com/nerrad567/homecore/internal/store"
)

// Logger defines the logging interface used by the Coordinator.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Coordinator applies actions to the store and enforces the home's rules.
type Coordinator struct {
	store   *store.Store
	metrics *metrics.Metrics
	logger  Logger
	now     func() time.Time
	loc     *time.Location

	mu sync.Mutex // serialises mutating actions

	listenersMu sync.RWMutex
	listeners   []Listener
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock sets the time source used for activity timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithLocation sets the time zone activity timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Coordinator) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithMetrics records unit executions and rule transitions on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// New creates a Coordinator over s.
func New(s *store.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  s,
		logger: noopLogger{},
		now:    time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogger sets the logger for the coordinator.
func (c *Coordinator) SetLogger(logger Logger) {
	c.logger = logger
}

// AddListener registers l for every event emitted from now on.
func (c *Coordinator) AddListener(l Listener) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Store returns the underlying store for read-only use by collaborators
// such as metrics gauges.
func (c *Coordinator) Store() *store.Store {
	return c.store
}

// exec runs one unit and records its outcome.
func (c *Coordinator) exec(u command.Unit) bool {
	applied := u.Execute(c.store)
	c.metrics.ObserveUnit(u.Name(), applied)
	c.logger.Debug("unit executed", "unit", u.Name(), "applied", applied)
	return applied
}

// emit delivers events to every listener. Must be called without c.mu held.
func (c *Coordinator) emit(events []Event) {
	if len(events) == 0 {
		return
	}

	c.listenersMu.RLock()
	listeners := c.listeners
	c.listenersMu.RUnlock()

	for _, e := range events {
		for _, l := range listeners {
			l.HandleEvent(e)
		}
	}
}

// batch collects the events of one action while c.mu is held.
type batch struct {
	c      *Coordinator
	events []Event
}

func (c *Coordinator) newBatch() *batch {
	return &batch{c: c}
}

func (b *batch) add(t EventType, id string, payload any) {
	b.events = append(b.events, Event{
		Type:      t,
		ID:        id,
		Payload:   payload,
		Timestamp: b.c.now(),
	})
}

// deviceUpdated queues a device.updated event with the stored state.
func (b *batch) deviceUpdated(id string) {
	if d, ok := b.c.store.GetDevice(id); ok {
		b.add(EventDeviceUpdated, id, d)
	}
}

// sceneUpdated queues a scene.updated event with the stored state.
func (b *batch) sceneUpdated(id string) {
	if sc, ok := b.c.store.GetScene(id); ok {
		b.add(EventSceneUpdated, id, sc)
	}
}

// run executes fn with c.mu held, then emits what fn queued.
func (c *Coordinator) run(fn func(b *batch) bool) bool {
	b := c.newBatch()

	c.mu.Lock()
	ok := fn(b)
	c.mu.Unlock()

	c.emit(b.events)
	return ok
}
