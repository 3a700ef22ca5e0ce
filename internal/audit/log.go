// Package audit keeps the bounded activity trail of the home.
package audit

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept before the oldest is evicted.
const DefaultCapacity = 50

// IconType tags an entry with the category of thing it is about.
type IconType string

const (
	IconLight      IconType = "LIGHT"
	IconThermostat IconType = "THERMOSTAT"
	IconLock       IconType = "LOCK"
	IconCamera     IconType = "CAMERA"
	IconScene      IconType = "SCENE"
	IconSecurity   IconType = "SECURITY"
)

// Entry is one line of the activity trail.
// Timestamp is a display string ("HH:mm"), not a sortable instant; order
// comes from the position in the log.
type Entry struct {
	ID         string   `json:"id"`
	Timestamp  string   `json:"timestamp"`
	DeviceName string   `json:"deviceName"`
	Action     string   `json:"action"`
	Details    string   `json:"details"`
	IconType   IconType `json:"iconType"`
}

// Log is a bounded, newest-first activity trail.
// It is safe for concurrent use. Reads return snapshots.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry // newest first
	capacity int
}

// NewLog creates a log holding at most capacity entries.
// A non-positive capacity selects DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Append inserts e at the head, evicting the oldest entry when full.
// An empty ID is filled with a fresh UUID. The stored entry is returned.
func (l *Log) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, Entry{})
	}
	copy(l.entries[1:], l.entries[:len(l.entries)-1])
	l.entries[0] = e

	return e
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything. The slice is a copy.
func (l *Log) List(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of entries held.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of entries held.
func (l *Log) Capacity() int {
	return l.capacity
}
