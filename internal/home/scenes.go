package home

import (
	"github.com/nerrad567/homecore/internal/audit"
	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/command"
)

// ListScenes returns every scene ordered by id.
func (c *Coordinator) ListScenes() []*automation.Scene {
	return c.store.ListScenes()
}

// GetScene returns the scene with the given id.
func (c *Coordinator) GetScene(id string) (*automation.Scene, bool) {
	return c.store.GetScene(id)
}

// CreateScene stores a new scene and returns it as stored. An empty id is
// replaced with a generated one. New scenes start inactive.
func (c *Coordinator) CreateScene(sc *automation.Scene) *automation.Scene {
	sc = sc.DeepCopy()
	if sc.ID == "" {
		sc.ID = automation.GenerateID()
	}
	sc.Active = false

	var created *automation.Scene
	c.run(func(b *batch) bool {
		c.exec(command.CreateScene{Scene: sc})
		created, _ = c.store.GetScene(sc.ID)
		b.add(EventSceneUpdated, sc.ID, created)
		return true
	})
	return created
}

// UpdateScene replaces the name and actions of a scene and marks it
// inactive. It returns false if the scene does not exist.
func (c *Coordinator) UpdateScene(sc *automation.Scene) (*automation.Scene, bool) {
	var updated *automation.Scene
	ok := c.run(func(b *batch) bool {
		if !c.exec(command.UpdateScene{Scene: sc}) {
			return false
		}
		updated, _ = c.store.GetScene(sc.ID)
		b.add(EventSceneUpdated, sc.ID, updated)
		return true
	})
	return updated, ok
}

// DeleteScene removes a scene. It returns false if it does not exist.
func (c *Coordinator) DeleteScene(id string) bool {
	return c.run(func(b *batch) bool {
		if !c.exec(command.DeleteScene{ID: id}) {
			return false
		}
		b.add(EventSceneDeleted, id, nil)
		return true
	})
}

// ActivateScene applies the scene's actions in order and marks it active.
//
// Actions whose device is missing or of the wrong kind are skipped; the
// rest still run. Activation does not invalidate the scene through its
// own targets. One activity entry is logged for the whole activation.
// It returns false if the scene does not exist.
func (c *Coordinator) ActivateScene(id string) bool {
	return c.run(func(b *batch) bool {
		sc, ok := c.store.GetScene(id)
		if !ok {
			return false
		}

		applied := 0
		for _, action := range sc.Actions {
			if c.exec(command.ApplySceneAction{Action: action}) {
				applied++
				b.deviceUpdated(action.DeviceID)
			}
		}
		c.exec(command.MarkSceneActive{ID: id})
		c.metrics.ObserveSceneActivation()
		c.logger.Info("scene activated", "scene_id", id, "actions", len(sc.Actions), "applied", applied)

		b.sceneUpdated(id)
		b.add(EventSceneActivated, id, nil)
		b.logActivity(id, "activated", "Scene activated", audit.IconScene)
		return true
	})
}
