package store

import (
	"slices"

	"github.com/nerrad567/homecore/internal/automation"
)

// GetScene returns a copy of the scene with the given id.
func (s *Store) GetScene(id string) (*automation.Scene, bool) {
	s.scenesMu.RLock()
	defer s.scenesMu.RUnlock()

	sc, ok := s.scenes[id]
	if !ok {
		return nil, false
	}
	return sc.DeepCopy(), true
}

// ListScenes returns copies of all scenes ordered by id.
func (s *Store) ListScenes() []*automation.Scene {
	s.scenesMu.RLock()
	defer s.scenesMu.RUnlock()

	return sortedValues(s.scenes,
		func(sc *automation.Scene) string { return sc.ID },
		(*automation.Scene).DeepCopy)
}

// PutScene stores a copy of sc, inserting or replacing by id.
func (s *Store) PutScene(sc *automation.Scene) *automation.Scene {
	stored := sc.DeepCopy()

	s.scenesMu.Lock()
	defer s.scenesMu.Unlock()

	s.scenes[stored.ID] = stored
	return stored.DeepCopy()
}

// UpdateScene runs fn on the stored scene under the scenes write lock.
// It returns false if the scene is missing or fn reported no change.
func (s *Store) UpdateScene(id string, fn func(sc *automation.Scene) bool) bool {
	s.scenesMu.Lock()
	defer s.scenesMu.Unlock()

	sc, ok := s.scenes[id]
	if !ok {
		return false
	}
	return fn(sc)
}

// DeleteScene removes a scene. It returns false if it does not exist.
func (s *Store) DeleteScene(id string) bool {
	s.scenesMu.Lock()
	defer s.scenesMu.Unlock()

	if _, ok := s.scenes[id]; !ok {
		return false
	}
	delete(s.scenes, id)
	return true
}

// DeactivateScenesTargeting clears Active on every scene with an action
// addressing deviceID and returns, in ascending order, the ids of the
// scenes that were active before.
func (s *Store) DeactivateScenesTargeting(deviceID string) []string {
	s.scenesMu.Lock()
	defer s.scenesMu.Unlock()

	var cleared []string
	for id, sc := range s.scenes {
		if !sc.Targets(deviceID) {
			continue
		}
		if sc.Active {
			cleared = append(cleared, id)
		}
		sc.Active = false
	}
	slices.Sort(cleared)
	return cleared
}
