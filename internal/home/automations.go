package home

import (
	"time"

	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/command"
)

// ListAutomations returns every automation ordered by id.
func (c *Coordinator) ListAutomations() []*automation.Automation {
	return c.store.ListAutomations()
}

// GetAutomation returns the automation with the given id.
func (c *Coordinator) GetAutomation(id string) (*automation.Automation, bool) {
	return c.store.GetAutomation(id)
}

// NextRun returns when a would next fire, evaluated in the home's time
// zone. Automations never actually fire; this is for display.
func (c *Coordinator) NextRun(a *automation.Automation) (time.Time, bool) {
	return automation.NextRun(a, c.now().In(c.loc))
}

// CreateAutomation stores a new automation and returns it as stored. An
// empty id is replaced with a generated one.
func (c *Coordinator) CreateAutomation(a *automation.Automation) *automation.Automation {
	a = a.DeepCopy()
	if a.ID == "" {
		a.ID = automation.GenerateID()
	}

	var created *automation.Automation
	c.run(func(b *batch) bool {
		c.exec(command.CreateAutomation{Automation: a})
		created, _ = c.store.GetAutomation(a.ID)
		b.add(EventAutomationUpdated, a.ID, created)
		return true
	})
	return created
}

// UpdateAutomation replaces an automation. It returns false if it does
// not exist.
func (c *Coordinator) UpdateAutomation(a *automation.Automation) (*automation.Automation, bool) {
	var updated *automation.Automation
	ok := c.run(func(b *batch) bool {
		if !c.exec(command.UpdateAutomation{Automation: a}) {
			return false
		}
		updated, _ = c.store.GetAutomation(a.ID)
		b.add(EventAutomationUpdated, a.ID, updated)
		return true
	})
	return updated, ok
}

// DeleteAutomation removes an automation. It returns false if it does
// not exist.
func (c *Coordinator) DeleteAutomation(id string) bool {
	return c.run(func(b *batch) bool {
		if !c.exec(command.DeleteAutomation{ID: id}) {
			return false
		}
		b.add(EventAutomationDeleted, id, nil)
		return true
	})
}
