package home

import (
	"github.com/google/uuid"

	"github.com/nerrad567/homecore/internal/command"
	"github.com/nerrad567/homecore/internal/location"
)

// ListRooms returns every room ordered by id.
func (c *Coordinator) ListRooms() []*location.Room {
	return c.store.ListRooms()
}

// GetRoom returns the room with the given id.
func (c *Coordinator) GetRoom(id string) (*location.Room, bool) {
	return c.store.GetRoom(id)
}

// CreateRoom stores a new room and returns it as stored. An empty id is
// replaced with a generated one. Listed devices that exist are moved into
// the room; like AssignDeviceToRoom, a move invalidates scenes targeting
// the device.
func (c *Coordinator) CreateRoom(r *location.Room) *location.Room {
	r = r.DeepCopy()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	var created *location.Room
	c.run(func(b *batch) bool {
		before := make(map[string]*string, len(r.DeviceIDs))
		for id := range r.DeviceIDs {
			if d, ok := c.store.GetDevice(id); ok {
				before[id] = d.RoomID
			}
		}

		c.exec(command.CreateRoom{Room: r})
		created, _ = c.store.GetRoom(r.ID)
		b.add(EventRoomUpdated, r.ID, created)

		for id, prev := range before {
			b.deviceUpdated(id)
			if prev == nil || *prev != r.ID {
				c.invalidateScenes(b, id)
			}
			if prev != nil && *prev != r.ID {
				if other, ok := c.store.GetRoom(*prev); ok {
					b.add(EventRoomUpdated, other.ID, other)
				}
			}
		}
		return true
	})
	return created
}

// UpdateRoom changes the name and description of a room. Membership is
// kept. It returns false if the room does not exist.
func (c *Coordinator) UpdateRoom(r *location.Room) (*location.Room, bool) {
	var updated *location.Room
	ok := c.run(func(b *batch) bool {
		if !c.exec(command.UpdateRoom{Room: r}) {
			return false
		}
		updated, _ = c.store.GetRoom(r.ID)
		b.add(EventRoomUpdated, r.ID, updated)
		return true
	})
	return updated, ok
}

// DeleteRoom removes a room and unassigns its devices without deleting
// them, invalidating scenes that target them. It returns false if the room
// does not exist.
func (c *Coordinator) DeleteRoom(id string) bool {
	return c.run(func(b *batch) bool {
		var members []string
		for _, d := range c.store.ListDevices() {
			if d.InRoom(id) {
				members = append(members, d.ID)
			}
		}

		if !c.exec(command.DeleteRoom{ID: id}) {
			return false
		}

		b.add(EventRoomDeleted, id, nil)
		for _, did := range members {
			b.deviceUpdated(did)
			c.invalidateScenes(b, did)
		}
		return true
	})
}
