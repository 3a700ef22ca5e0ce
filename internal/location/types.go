package location

import (
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"
)

// Room represents a physical space in the home.
//
// DeviceIDs is the authoritative membership set. Device.RoomID mirrors it and
// the two are kept in step by assignment and by the delete cascades.
type Room struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	DeviceIDs   IDSet  `json:"deviceIds" yaml:"deviceIds"`
}

// NewRoom returns an empty room.
func NewRoom(id, name, description string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		DeviceIDs:   IDSet{},
	}
}

// AddDevice adds deviceID to the room. Adding a member twice is harmless.
func (r *Room) AddDevice(deviceID string) {
	if r.DeviceIDs == nil {
		r.DeviceIDs = IDSet{}
	}
	r.DeviceIDs.Add(deviceID)
}

// RemoveDevice removes deviceID and reports whether it was a member.
func (r *Room) RemoveDevice(deviceID string) bool {
	return r.DeviceIDs.Remove(deviceID)
}

// HasDevice reports whether deviceID is a member of the room.
func (r *Room) HasDevice(deviceID string) bool {
	return r.DeviceIDs.Has(deviceID)
}

// DeepCopy creates a complete independent copy of the Room.
func (r *Room) DeepCopy() *Room {
	if r == nil {
		return nil
	}
	cpy := *r
	cpy.DeviceIDs = r.DeviceIDs.Clone()
	return &cpy
}

// IDSet is an unordered set of ids. It encodes as a sorted JSON array.
type IDSet map[string]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id.
func (s IDSet) Add(id string) { s[id] = struct{}{} }

// Remove deletes id and reports whether it was present.
func (s IDSet) Remove(id string) bool {
	if _, ok := s[id]; !ok {
		return false
	}
	delete(s, id)
	return true
}

// Has reports whether id is present.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns an independent copy. A nil set clones to an empty one.
func (s IDSet) Clone() IDSet {
	cpy := make(IDSet, len(s))
	for id := range s {
		cpy[id] = struct{}{}
	}
	return cpy
}

// MarshalJSON implements json.Marshaler.
func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler. Duplicates collapse.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s IDSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *IDSet) UnmarshalYAML(value *yaml.Node) error {
	var ids []string
	if err := value.Decode(&ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
