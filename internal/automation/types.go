package automation

// ActionType names what a SceneAction does to its device.
type ActionType string

const (
	ActionTurnOn        ActionType = "TURN_ON"
	ActionTurnOff       ActionType = "TURN_OFF"
	ActionLock          ActionType = "LOCK"
	ActionUnlock        ActionType = "UNLOCK"
	ActionRecord        ActionType = "RECORD"
	ActionStopRecording ActionType = "STOP_RECORDING"
	ActionSetTemp       ActionType = "SET_TEMP"
)

// AllActionTypes returns every scene action type.
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTurnOn,
		ActionTurnOff,
		ActionLock,
		ActionUnlock,
		ActionRecord,
		ActionStopRecording,
		ActionSetTemp,
	}
}

// Scene is a named, ordered list of device actions applied together.
//
// Active is derived state: it is set when the scene is activated and
// cleared as soon as any device it targets is changed by anything else.
type Scene struct {
	ID      string        `json:"id" yaml:"id"`
	Name    string        `json:"name" yaml:"name"`
	Actions []SceneAction `json:"actions" yaml:"actions"`
	Active  bool          `json:"active" yaml:"active"`
}

// SceneAction is one step of a scene.
// Value is only read by SET_TEMP.
type SceneAction struct {
	DeviceID   string     `json:"deviceId" yaml:"deviceId"`
	ActionType ActionType `json:"actionType" yaml:"actionType"`
	Value      *float64   `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewScene returns an inactive scene.
func NewScene(id, name string, actions ...SceneAction) *Scene {
	return &Scene{
		ID:      id,
		Name:    name,
		Actions: actions,
	}
}

// Targets reports whether any action of the scene addresses deviceID.
func (s *Scene) Targets(deviceID string) bool {
	for _, a := range s.Actions {
		if a.DeviceID == deviceID {
			return true
		}
	}
	return false
}

// RemoveActionsFor strips every action addressing deviceID, keeping the
// order of the rest. It reports whether anything was removed.
func (s *Scene) RemoveActionsFor(deviceID string) bool {
	kept := s.Actions[:0]
	for _, a := range s.Actions {
		if a.DeviceID != deviceID {
			kept = append(kept, a)
		}
	}
	removed := len(kept) != len(s.Actions)
	s.Actions = kept
	return removed
}

// DeepCopy creates a complete independent copy of the Scene.
func (s *Scene) DeepCopy() *Scene {
	if s == nil {
		return nil
	}

	cpy := *s
	if s.Actions != nil {
		cpy.Actions = make([]SceneAction, len(s.Actions))
		for i, a := range s.Actions {
			cpy.Actions[i] = a
			cpy.Actions[i].Value = cloneFloatPtr(a.Value)
		}
	}
	return &cpy
}

// AutomationActionType names what an AutomationAction targets.
type AutomationActionType string

const (
	AutomationActionScene         AutomationActionType = "SCENE"
	AutomationActionDeviceControl AutomationActionType = "DEVICE_CONTROL"
)

// Automation is a stored schedule with actions. Nothing executes it; the
// schedule is only parsed to validate it and to compute the next fire time.
type Automation struct {
	ID      string             `json:"id" yaml:"id"`
	Name    string             `json:"name" yaml:"name"`
	Time    string             `json:"time" yaml:"time"` // HH:mm
	Days    []string           `json:"days" yaml:"days"` // Mon..Sun; empty means every day
	Actions []AutomationAction `json:"actions" yaml:"actions"`
	Active  bool               `json:"active" yaml:"active"`
}

// AutomationAction is one step of an automation.
// Action is free-form (e.g. "turnOn", "setTemperature").
type AutomationAction struct {
	Type     AutomationActionType `json:"type" yaml:"type"`
	TargetID string               `json:"targetId" yaml:"targetId"`
	Action   string               `json:"action" yaml:"action"`
	Value    *float64             `json:"value,omitempty" yaml:"value,omitempty"`
}

// DeepCopy creates a complete independent copy of the Automation.
func (a *Automation) DeepCopy() *Automation {
	if a == nil {
		return nil
	}

	cpy := *a
	if a.Days != nil {
		cpy.Days = append([]string(nil), a.Days...)
	}
	if a.Actions != nil {
		cpy.Actions = make([]AutomationAction, len(a.Actions))
		for i, act := range a.Actions {
			cpy.Actions[i] = act
			cpy.Actions[i].Value = cloneFloatPtr(act.Value)
		}
	}
	return &cpy
}

func cloneFloatPtr(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
