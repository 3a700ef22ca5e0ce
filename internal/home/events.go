package home

import "time"

// EventType names a state change published to listeners.
type EventType string

const (
	EventDeviceUpdated     EventType = "device.updated"
	EventDeviceDeleted     EventType = "device.deleted"
	EventRoomUpdated       EventType = "room.updated"
	EventRoomDeleted       EventType = "room.deleted"
	EventSceneUpdated      EventType = "scene.updated"
	EventSceneDeleted      EventType = "scene.deleted"
	EventSceneActivated    EventType = "scene.activated"
	EventAutomationUpdated EventType = "automation.updated"
	EventAutomationDeleted EventType = "automation.deleted"
	EventSecurityChanged   EventType = "security.changed"
	EventActivityAppended  EventType = "activity.appended"
)

// AllEventTypes returns every event type, in a stable order.
func AllEventTypes() []EventType {
	return []EventType{
		EventDeviceUpdated,
		EventDeviceDeleted,
		EventRoomUpdated,
		EventRoomDeleted,
		EventSceneUpdated,
		EventSceneDeleted,
		EventSceneActivated,
		EventAutomationUpdated,
		EventAutomationDeleted,
		EventSecurityChanged,
		EventActivityAppended,
	}
}

// Event is a completed state change.
//
// Payload holds a copy of the entity after the change: *device.Device,
// *location.Room, *automation.Scene, *automation.Automation, SecurityStatus
// or audit.Entry. Delete events carry only the ID.
type Event struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Listener receives events after the action that produced them has
// finished. HandleEvent must not block; sinks that do I/O queue the event.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function into a Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }
