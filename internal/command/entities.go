package command

import (
	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/location"
	"github.com/nerrad567/homecore/internal/store"
)

// CreateRoom inserts a room.
type CreateRoom struct{ Room *location.Room }

func (CreateRoom) Name() string { return "room.create" }

func (c CreateRoom) Execute(s *store.Store) bool {
	if c.Room == nil {
		return false
	}
	s.CreateRoom(c.Room)
	return true
}

// UpdateRoom renames an existing room.
type UpdateRoom struct{ Room *location.Room }

func (UpdateRoom) Name() string { return "room.update" }

func (c UpdateRoom) Execute(s *store.Store) bool {
	if c.Room == nil {
		return false
	}
	_, ok := s.ReplaceRoom(c.Room)
	return ok
}

// DeleteRoom removes a room and unassigns its devices.
type DeleteRoom struct{ ID string }

func (DeleteRoom) Name() string { return "room.delete" }

func (c DeleteRoom) Execute(s *store.Store) bool { return s.DeleteRoom(c.ID) }

// CreateScene inserts a scene.
type CreateScene struct{ Scene *automation.Scene }

func (CreateScene) Name() string { return "scene.create" }

func (c CreateScene) Execute(s *store.Store) bool {
	if c.Scene == nil {
		return false
	}
	s.PutScene(c.Scene)
	return true
}

// UpdateScene replaces an existing scene. The replacement starts inactive.
type UpdateScene struct{ Scene *automation.Scene }

func (UpdateScene) Name() string { return "scene.update" }

func (c UpdateScene) Execute(s *store.Store) bool {
	if c.Scene == nil {
		return false
	}
	return s.UpdateScene(c.Scene.ID, func(sc *automation.Scene) bool {
		sc.Name = c.Scene.Name
		sc.Actions = c.Scene.DeepCopy().Actions
		sc.Active = false
		return true
	})
}

// DeleteScene removes a scene.
type DeleteScene struct{ ID string }

func (DeleteScene) Name() string { return "scene.delete" }

func (c DeleteScene) Execute(s *store.Store) bool { return s.DeleteScene(c.ID) }

// MarkSceneActive sets a scene's Active flag after its actions were applied.
type MarkSceneActive struct{ ID string }

func (MarkSceneActive) Name() string { return "scene.mark_active" }

func (c MarkSceneActive) Execute(s *store.Store) bool {
	return s.UpdateScene(c.ID, func(sc *automation.Scene) bool {
		sc.Active = true
		return true
	})
}

// InvalidateScenes clears Active on every scene targeting DeviceID.
// Cleared receives the ids of scenes that were active.
type InvalidateScenes struct {
	DeviceID string
	Cleared  []string
}

func (*InvalidateScenes) Name() string { return "scene.invalidate" }

func (c *InvalidateScenes) Execute(s *store.Store) bool {
	c.Cleared = s.DeactivateScenesTargeting(c.DeviceID)
	return len(c.Cleared) > 0
}

// CreateAutomation inserts an automation.
type CreateAutomation struct{ Automation *automation.Automation }

func (CreateAutomation) Name() string { return "automation.create" }

func (c CreateAutomation) Execute(s *store.Store) bool {
	if c.Automation == nil {
		return false
	}
	s.PutAutomation(c.Automation)
	return true
}

// UpdateAutomation replaces an existing automation.
type UpdateAutomation struct{ Automation *automation.Automation }

func (UpdateAutomation) Name() string { return "automation.update" }

func (c UpdateAutomation) Execute(s *store.Store) bool {
	if c.Automation == nil || !s.HasAutomation(c.Automation.ID) {
		return false
	}
	s.PutAutomation(c.Automation)
	return true
}

// DeleteAutomation removes an automation.
type DeleteAutomation struct{ ID string }

func (DeleteAutomation) Name() string { return "automation.delete" }

func (c DeleteAutomation) Execute(s *store.Store) bool { return s.DeleteAutomation(c.ID) }
