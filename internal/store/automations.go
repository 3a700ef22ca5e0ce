package store

import (
	"github.com/nerrad567/homecore/internal/automation"
)

// GetAutomation returns a copy of the automation with the given id.
func (s *Store) GetAutomation(id string) (*automation.Automation, bool) {
	s.automationsMu.RLock()
	defer s.automationsMu.RUnlock()

	a, ok := s.automations[id]
	if !ok {
		return nil, false
	}
	return a.DeepCopy(), true
}

// ListAutomations returns copies of all automations ordered by id.
func (s *Store) ListAutomations() []*automation.Automation {
	s.automationsMu.RLock()
	defer s.automationsMu.RUnlock()

	return sortedValues(s.automations,
		func(a *automation.Automation) string { return a.ID },
		(*automation.Automation).DeepCopy)
}

// PutAutomation stores a copy of a, inserting or replacing by id.
func (s *Store) PutAutomation(a *automation.Automation) *automation.Automation {
	stored := a.DeepCopy()

	s.automationsMu.Lock()
	defer s.automationsMu.Unlock()

	s.automations[stored.ID] = stored
	return stored.DeepCopy()
}

// HasAutomation reports whether an automation with the given id exists.
func (s *Store) HasAutomation(id string) bool {
	s.automationsMu.RLock()
	defer s.automationsMu.RUnlock()
	_, ok := s.automations[id]
	return ok
}

// DeleteAutomation removes an automation. It returns false if it does not exist.
func (s *Store) DeleteAutomation(id string) bool {
	s.automationsMu.Lock()
	defer s.automationsMu.Unlock()

	if _, ok := s.automations[id]; !ok {
		return false
	}
	delete(s.automations, id)
	return true
}
