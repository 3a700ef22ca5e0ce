package command

import (
	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/store"
)

// CreateDevice inserts a device, joining the room it names.
type CreateDevice struct{ Device *device.Device }

func (CreateDevice) Name() string { return "device.create" }

func (c CreateDevice) Execute(s *store.Store) bool {
	if c.Device == nil {
		return false
	}
	s.CreateDevice(c.Device)
	return true
}

// UpdateDevice replaces an existing device. Room membership is kept.
type UpdateDevice struct{ Device *device.Device }

func (UpdateDevice) Name() string { return "device.update" }

func (c UpdateDevice) Execute(s *store.Store) bool {
	if c.Device == nil {
		return false
	}
	_, ok := s.ReplaceDevice(c.Device)
	return ok
}

// DeleteDevice removes a device with its room and scene references.
type DeleteDevice struct{ ID string }

func (DeleteDevice) Name() string { return "device.delete" }

func (c DeleteDevice) Execute(s *store.Store) bool { return s.DeleteDevice(c.ID) }

// ToggleDevice flips the on state of a device of any kind.
type ToggleDevice struct{ ID string }

func (ToggleDevice) Name() string { return "device.toggle" }

func (c ToggleDevice) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool {
		d.Toggle()
		return true
	})
}

// TurnOnLight switches a light on.
type TurnOnLight struct{ ID string }

func (TurnOnLight) Name() string { return "light.turn_on" }

func (c TurnOnLight) Execute(s *store.Store) bool { return setLight(s, c.ID, true) }

// TurnOffLight switches a light off.
type TurnOffLight struct{ ID string }

func (TurnOffLight) Name() string { return "light.turn_off" }

func (c TurnOffLight) Execute(s *store.Store) bool { return setLight(s, c.ID, false) }

func setLight(s *store.Store, id string, on bool) bool {
	return s.UpdateDevice(id, func(d *device.Device) bool {
		if d.Kind != device.KindLight {
			return false
		}
		d.SetOn(on)
		return true
	})
}

// Lock locks a lock.
type Lock struct{ ID string }

func (Lock) Name() string { return "lock.lock" }

func (c Lock) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.SetLocked(true) })
}

// Unlock unlocks a lock.
type Unlock struct{ ID string }

func (Unlock) Name() string { return "lock.unlock" }

func (c Unlock) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.SetLocked(false) })
}

// StartRecording starts a camera recording.
type StartRecording struct{ ID string }

func (StartRecording) Name() string { return "camera.start_recording" }

func (c StartRecording) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.SetRecording(true) })
}

// StopRecording stops a camera recording.
type StopRecording struct{ ID string }

func (StopRecording) Name() string { return "camera.stop_recording" }

func (c StopRecording) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.SetRecording(false) })
}

// IncreaseTargetHeat raises a thermostat's target by Amount, then clamps.
type IncreaseTargetHeat struct {
	ID     string
	Amount float64
}

func (IncreaseTargetHeat) Name() string { return "thermostat.increase_target" }

func (c IncreaseTargetHeat) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.IncreaseTargetTemperature(c.Amount) })
}

// DecreaseTargetHeat lowers a thermostat's target by Amount, then clamps.
type DecreaseTargetHeat struct {
	ID     string
	Amount float64
}

func (DecreaseTargetHeat) Name() string { return "thermostat.decrease_target" }

func (c DecreaseTargetHeat) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.DecreaseTargetTemperature(c.Amount) })
}

// SetTargetHeat sets a thermostat's target, clamped.
type SetTargetHeat struct {
	ID    string
	Value float64
}

func (SetTargetHeat) Name() string { return "thermostat.set_target" }

func (c SetTargetHeat) Execute(s *store.Store) bool {
	return s.UpdateDevice(c.ID, func(d *device.Device) bool { return d.SetTargetTemperature(c.Value) })
}

// AssignDeviceToRoom moves a device into a room.
type AssignDeviceToRoom struct {
	DeviceID string
	RoomID   string
}

func (AssignDeviceToRoom) Name() string { return "device.assign_room" }

func (c AssignDeviceToRoom) Execute(s *store.Store) bool {
	return s.AssignDeviceToRoom(c.DeviceID, c.RoomID)
}

// ApplySceneAction applies one scene step to its device.
//
// TURN_ON and TURN_OFF work on any kind. LOCK/UNLOCK need a lock,
// RECORD/STOP_RECORDING a camera, SET_TEMP a thermostat and a value.
// Anything else, including a missing device, is skipped.
type ApplySceneAction struct{ Action automation.SceneAction }

func (ApplySceneAction) Name() string { return "scene.apply_action" }

func (c ApplySceneAction) Execute(s *store.Store) bool {
	a := c.Action
	return s.UpdateDevice(a.DeviceID, func(d *device.Device) bool {
		switch a.ActionType {
		case automation.ActionTurnOn:
			d.SetOn(true)
			return true
		case automation.ActionTurnOff:
			d.SetOn(false)
			return true
		case automation.ActionLock:
			return d.SetLocked(true)
		case automation.ActionUnlock:
			return d.SetLocked(false)
		case automation.ActionRecord:
			return d.SetRecording(true)
		case automation.ActionStopRecording:
			return d.SetRecording(false)
		case automation.ActionSetTemp:
			if a.Value == nil {
				return false
			}
			return d.SetTargetTemperature(*a.Value)
		default:
			return false
		}
	})
}
