package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/homecore/internal/home"
	"github.com/nerrad567/homecore/internal/metrics"
)

// DefaultQueueSize is the number of events a StatePublisher buffers
// before it starts dropping.
const DefaultQueueSize = 256

// Publisher is the subset of Client a StatePublisher needs.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// Logger is the logging surface used by this package.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Message is one outbound MQTT publish.
type Message struct {
	Topic    string
	Payload  []byte
	Retained bool
}

// sceneActivation is the body of homecore/scene/{id}/activated.
type sceneActivation struct {
	SceneID   string    `json:"sceneId"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildMessage maps a home event onto its MQTT message. It reports false
// for event types that are not mirrored to the broker.
//
// Deleting a device publishes an empty retained payload, which clears the
// retained state on the broker.
func BuildMessage(ev home.Event) (Message, bool, error) {
	var (
		msg  Message
		body any
	)

	switch ev.Type {
	case home.EventDeviceUpdated:
		msg = Message{Topic: Topics{}.DeviceState(ev.ID), Retained: true}
		body = ev.Payload
	case home.EventDeviceDeleted:
		return Message{Topic: Topics{}.DeviceState(ev.ID), Payload: []byte{}, Retained: true}, true, nil
	case home.EventSecurityChanged:
		msg = Message{Topic: Topics{}.SecurityMode(), Retained: true}
		body = ev.Payload
	case home.EventActivityAppended:
		msg = Message{Topic: Topics{}.Activity()}
		body = ev.Payload
	case home.EventSceneActivated:
		msg = Message{Topic: Topics{}.SceneActivated(ev.ID)}
		body = sceneActivation{SceneID: ev.ID, Timestamp: ev.Timestamp}
	default:
		return Message{}, false, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Message{}, false, fmt.Errorf("encoding %s payload: %w", ev.Type, err)
	}
	msg.Payload = payload
	return msg, true, nil
}

// StatePublisher mirrors home events to MQTT.
//
// HandleEvent never blocks the Coordinator: events are queued and published
// by Run. When the queue is full the event is dropped and counted.
type StatePublisher struct {
	pub     Publisher
	qos     byte
	queue   chan home.Event
	metrics *metrics.Metrics
	logger  Logger
}

// NewStatePublisher creates a publisher with a queue of queueSize events
// (DefaultQueueSize if not positive). m may be nil.
func NewStatePublisher(pub Publisher, qos byte, queueSize int, m *metrics.Metrics) *StatePublisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &StatePublisher{
		pub:     pub,
		qos:     qos,
		queue:   make(chan home.Event, queueSize),
		metrics: m,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger. Call before Run.
func (p *StatePublisher) SetLogger(logger Logger) {
	p.logger = logger
}

// HandleEvent queues ev for publishing.
func (p *StatePublisher) HandleEvent(ev home.Event) {
	switch ev.Type {
	case home.EventDeviceUpdated, home.EventDeviceDeleted, home.EventSecurityChanged,
		home.EventActivityAppended, home.EventSceneActivated:
	default:
		return
	}

	select {
	case p.queue <- ev:
	default:
		p.metrics.ObserveDroppedEvent("mqtt")
		p.logger.Warn("mqtt queue full, event dropped", "type", ev.Type, "id", ev.ID)
	}
}

// Run publishes queued events until ctx is cancelled. Events still queued
// at cancellation are published before Run returns.
func (p *StatePublisher) Run(ctx context.Context) {
	for {
		select {
		case ev := <-p.queue:
			p.publish(ev)
		case <-ctx.Done():
			for {
				select {
				case ev := <-p.queue:
					p.publish(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *StatePublisher) publish(ev home.Event) {
	msg, ok, err := BuildMessage(ev)
	if err != nil {
		p.logger.Error("building mqtt message", "type", ev.Type, "error", err)
		return
	}
	if !ok {
		return
	}
	if err := p.pub.Publish(msg.Topic, msg.Payload, p.qos, msg.Retained); err != nil {
		p.logger.Warn("mqtt publish failed", "topic", msg.Topic, "error", err)
	}
}
