package automation

import "errors"

// Domain errors for the automation package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, automation.ErrInvalidSchedule) {
//	    // reject the request
//	}
var (
	// ErrSceneNotFound is returned when a scene ID does not exist.
	ErrSceneNotFound = errors.New("scene: not found")

	// ErrInvalidAction is returned when a scene action is invalid.
	ErrInvalidAction = errors.New("scene: invalid action")

	// ErrInvalidName is returned when a scene or automation name is empty or too long.
	ErrInvalidName = errors.New("automation: invalid name")

	// ErrAutomationNotFound is returned when an automation ID does not exist.
	ErrAutomationNotFound = errors.New("automation: not found")

	// ErrInvalidSchedule is returned when an automation time or day list cannot be parsed.
	ErrInvalidSchedule = errors.New("automation: invalid schedule")

	// ErrInvalidAutomationAction is returned when an automation action is invalid.
	ErrInvalidAutomationAction = errors.New("automation: invalid action")
)
