package automation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validation constants.
const (
	maxNameLength = 100
	maxActions    = 100
)

// Pre-computed validation set for O(1) action type lookups.
var validActionTypes map[ActionType]struct{}

func init() {
	validActionTypes = make(map[ActionType]struct{}, len(AllActionTypes()))
	for _, t := range AllActionTypes() {
		validActionTypes[t] = struct{}{}
	}
}

// ValidateScene checks a scene loaded from a seed file.
// Scenes created at runtime are not validated: unknown action types are
// skipped at activation time instead.
func ValidateScene(s *Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidAction)
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if len(s.Actions) > maxActions {
		return fmt.Errorf("%w: scene has more than %d actions", ErrInvalidAction, maxActions)
	}
	for i, a := range s.Actions {
		if a.DeviceID == "" {
			return fmt.Errorf("%w: action %d has no device", ErrInvalidAction, i)
		}
		if _, ok := validActionTypes[a.ActionType]; !ok {
			return fmt.Errorf("%w: action %d has unknown type %q", ErrInvalidAction, i, a.ActionType)
		}
		if a.ActionType == ActionSetTemp && a.Value == nil {
			return fmt.Errorf("%w: action %d is SET_TEMP without a value", ErrInvalidAction, i)
		}
	}
	return nil
}

// ValidateAutomation checks an automation's name, schedule and actions.
func ValidateAutomation(a *Automation) error {
	if a == nil {
		return fmt.Errorf("%w: nil automation", ErrInvalidAutomationAction)
	}
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	if _, err := ParseSchedule(a); err != nil {
		return err
	}
	for i, act := range a.Actions {
		switch act.Type {
		case AutomationActionScene, AutomationActionDeviceControl:
		default:
			return fmt.Errorf("%w: action %d has unknown type %q", ErrInvalidAutomationAction, i, act.Type)
		}
		if act.TargetID == "" {
			return fmt.Errorf("%w: action %d has no target", ErrInvalidAutomationAction, i)
		}
	}
	return nil
}

// ValidateName checks if a scene or automation name is valid.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// GenerateID creates a new UUID for a scene or automation.
func GenerateID() string {
	return uuid.New().String()
}
