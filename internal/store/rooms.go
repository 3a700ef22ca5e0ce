package store

import (
	"github.com/nerrad567/homecore/internal/location"
)

// GetRoom returns a copy of the room with the given id.
func (s *Store) GetRoom(id string) (*location.Room, bool) {
	s.roomsMu.RLock()
	defer s.roomsMu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	return r.DeepCopy(), true
}

// ListRooms returns copies of all rooms ordered by id.
func (s *Store) ListRooms() []*location.Room {
	s.roomsMu.RLock()
	defer s.roomsMu.RUnlock()

	return sortedValues(s.rooms,
		func(r *location.Room) string { return r.ID },
		(*location.Room).DeepCopy)
}

// CreateRoom stores a copy of r and returns it as stored.
//
// Member ids that do not name a stored device are dropped, and listed
// devices have their RoomID pointed at r. A device already in another room
// is moved.
func (s *Store) CreateRoom(r *location.Room) *location.Room {
	stored := r.DeepCopy()

	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	if prev, ok := s.rooms[stored.ID]; ok {
		for id := range prev.DeviceIDs {
			if d, ok := s.devices[id]; ok && d.InRoom(prev.ID) {
				d.RoomID = nil
			}
		}
	}

	for id := range stored.DeviceIDs {
		d, ok := s.devices[id]
		if !ok {
			stored.RemoveDevice(id)
			continue
		}
		if d.RoomID != nil && *d.RoomID != stored.ID {
			if other, ok := s.rooms[*d.RoomID]; ok {
				other.RemoveDevice(id)
			}
		}
		rid := stored.ID
		d.RoomID = &rid
	}

	s.rooms[stored.ID] = stored
	return stored.DeepCopy()
}

// ReplaceRoom overwrites the name and description of an existing room.
// Membership only changes through assignment and deletes, so r.DeviceIDs
// is ignored. It returns false if the room does not exist.
func (s *Store) ReplaceRoom(r *location.Room) (*location.Room, bool) {
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	prev, ok := s.rooms[r.ID]
	if !ok {
		return nil, false
	}

	prev.Name = r.Name
	prev.Description = r.Description
	return prev.DeepCopy(), true
}

// DeleteRoom removes a room and clears RoomID on its former members.
// It returns false if the room does not exist.
func (s *Store) DeleteRoom(id string) bool {
	s.devicesMu.Lock()
	defer s.devicesMu.Unlock()
	s.roomsMu.Lock()
	defer s.roomsMu.Unlock()

	if _, ok := s.rooms[id]; !ok {
		return false
	}
	delete(s.rooms, id)

	for _, d := range s.devices {
		if d.InRoom(id) {
			d.RoomID = nil
		}
	}
	return true
}
