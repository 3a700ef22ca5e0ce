package store

import (
	"slices"

	"github.com/nerrad567/homecore/internal/device"
)

// GetDevice returns a copy of the device with the given id.
func (s *Store) GetDevice(id string) (*device.Device, bool) {
	s.devicesMu.RLock()
	defer s.devicesMu.RUnlock()

	d, ok := s.devices[id]
	if !ok {
		return nil, false
	}
	return d.DeepCopy(), true
}

// ListDevices returns copies of all devices ordered by id.
func (s *Store) ListDevices() []*device.Device {
	s.devicesMu.RLock()
	defer s.devicesMu.RUnlock()

	return sortedValues(s.devices,
		func(d *device.Device) string { return d.ID },
		(*device.Device).DeepCopy)
}

// HasDevice reports whether a device with the given id exists.
func (s *Store) HasDevice(id string) bool {
	s.devicesMu.RLock()
	defer s.devicesMu.RUnlock()
	_, ok := s.devices[id]
	return ok
}

// CreateDevice stores a copy of d, replacing any device with the same id.
//
// If d names an existing room, the device joins that room's member set;
// an unknown room id is cleared. It returns the device as stored.
func (s *Store) CreateDevice(d *device.Device) *device.Device {
	stored := d.DeepCopy()
	stored.Normalize()

	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	if prev, ok := s.devices[stored.ID]; ok && prev.RoomID != nil {
		if room, ok := s.rooms[*prev.RoomID]; ok {
			room.RemoveDevice(stored.ID)
		}
	}

	if stored.RoomID != nil {
		if room, ok := s.rooms[*stored.RoomID]; ok {
			room.AddDevice(stored.ID)
		} else {
			stored.RoomID = nil
		}
	}

	s.devices[stored.ID] = stored
	return stored.DeepCopy()
}

// ReplaceDevice overwrites an existing device with a copy of d.
//
// Room membership is not changed by a replace: the stored RoomID is kept
// whatever d carries. Use AssignDeviceToRoom to move a device. It returns
// false if no device with d.ID exists.
func (s *Store) ReplaceDevice(d *device.Device) (*device.Device, bool) {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()

	prev, ok := s.devices[d.ID]
	if !ok {
		return nil, false
	}

	stored := d.DeepCopy()
	stored.RoomID = prev.RoomID
	stored.Normalize()

	s.devices[stored.ID] = stored
	return stored.DeepCopy(), true
}

// UpdateDevice runs fn on the stored device under the devices write lock,
// giving a read-modify-write with no lost updates. fn reports whether it
// changed anything; UpdateDevice returns false if the device is missing or
// fn returned false.
func (s *Store) UpdateDevice(id string, fn func(d *device.Device) bool) bool {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()

	d, ok := s.devices[id]
	if !ok {
		return false
	}
	return fn(d)
}

// UpdateDevices runs fn on every stored device under one write lock and
// returns the ids, in ascending order, for which fn reported a change.
func (s *Store) UpdateDevices(fn func(d *device.Device) bool) []string {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()

	var changed []string
	for id, d := range s.devices {
		if fn(d) {
			changed = append(changed, id)
		}
	}
	slices.Sort(changed)
	return changed
}

// DeleteDevice removes a device, detaches it from its room and strips every
// scene action that targets it. It returns false if the device is missing.
func (s *Store) DeleteDevice(id string) bool {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()
	s.scenesMu.Lock()
	defer s.scenesMu.Unlock()

	d, ok := s.devices[id]
	if !ok {
		return false
	}
	delete(s.devices, id)

	if d.RoomID != nil {
		if room, ok := s.rooms[*d.RoomID]; ok {
			room.RemoveDevice(id)
		}
	}
	// Membership sets are authoritative; sweep in case RoomID was stale.
	for _, room := range s.rooms {
		room.RemoveDevice(id)
	}
	for _, scene := range s.scenes {
		scene.RemoveActionsFor(id)
	}

	return true
}

// AssignDeviceToRoom moves a device into a room, removing it from its
// previous room. It returns false if either id is unknown.
func (s *Store) AssignDeviceToRoom(deviceID, roomID string) bool {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	d, ok := s.devices[deviceID]
	if !ok {
		return false
	}
	target, ok := s.rooms[roomID]
	if !ok {
		return false
	}

	if d.RoomID != nil {
		if prev, ok := s.rooms[*d.RoomID]; ok {
			prev.RemoveDevice(deviceID)
		}
	}

	target.AddDevice(deviceID)
	rid := roomID
	d.RoomID = &rid
	return true
}
