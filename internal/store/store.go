// Package store holds the in-memory state of the home.
//
// Each entity type lives in its own map behind its own sync.RWMutex.
// Every read returns a deep copy and every write stores one, so callers
// never share memory with the store.
//
// Operations that touch more than one map (cascading deletes, room
// assignment) take the locks in a fixed order: devices, rooms, scenes.
package store

import (
	"cmp"
	"slices"
	"sync"

	"github.com/nerrad567/homecore/internal/audit"
	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/location"
)

// SecurityMode is the home-wide alarm state.
type SecurityMode string

const (
	ModeArmed    SecurityMode = "armed"
	ModeDisarmed SecurityMode = "disarmed"
)

// Store is the entity store. The zero value is not usable; call New.
type Store struct {
	devicesMu sync.RWMutex
	devices   map[string]*device.Device

	roomsMu sync.RWMutex
	rooms   map[string]*location.Room

	scenesMu sync.RWMutex
	scenes   map[string]*automation.Scene

	automationsMu sync.RWMutex
	automations   map[string]*automation.Automation

	securityMu sync.RWMutex
	security   SecurityMode

	activity *audit.Log
}

// New creates an empty store in disarmed mode with an activity log of
// the given capacity (non-positive selects audit.DefaultCapacity).
func New(activityCapacity int) *Store {
	return &Store{
		devices:     make(map[string]*device.Device),
		rooms:       make(map[string]*location.Room),
		scenes:      make(map[string]*automation.Scene),
		automations: make(map[string]*automation.Automation),
		security:    ModeDisarmed,
		activity:    audit.NewLog(activityCapacity),
	}
}

// SecurityMode returns the current security mode.
func (s *Store) SecurityMode() SecurityMode {
	s.securityMu.RLock()
	defer s.securityMu.RUnlock()
	return s.security
}

// SetSecurityMode sets the security mode and returns the previous one.
func (s *Store) SetSecurityMode(mode SecurityMode) SecurityMode {
	s.securityMu.Lock()
	defer s.securityMu.Unlock()
	prev := s.security
	s.security = mode
	return prev
}

// AppendActivity adds an entry to the activity log and returns it as stored.
func (s *Store) AppendActivity(e audit.Entry) audit.Entry {
	return s.activity.Append(e)
}

// Activity returns up to limit log entries, newest first (all when limit <= 0).
func (s *Store) Activity(limit int) []audit.Entry {
	return s.activity.List(limit)
}

// Counts returns the number of stored entities per type.
func (s *Store) Counts() (devices, rooms, scenes, automations int) {
	s.devicesMu.RLock()
	devices = len(s.devices)
	s.devicesMu.RUnlock()

	s.roomsMu.RLock()
	rooms = len(s.rooms)
	s.roomsMu.RUnlock()

	s.scenesMu.RLock()
	scenes = len(s.scenes)
	s.scenesMu.RUnlock()

	s.automationsMu.RLock()
	automations = len(s.automations)
	s.automationsMu.RUnlock()

	return devices, rooms, scenes, automations
}

// sortedValues returns copies of the map values ordered by id.
func sortedValues[T any](m map[string]T, id func(T) string, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}
