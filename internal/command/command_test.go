package command

import (
	"testing"

	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/location"
	"github.com/nerrad567/homecore/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(0)
	s.CreateRoom(location.NewRoom("room-1", "Room", ""))
	s.CreateDevice(device.NewLight("light-1", "Light"))
	s.CreateDevice(device.NewThermostat("thermostat-1", "Thermostat"))
	s.CreateDevice(device.NewLock("lock-1", "Lock"))
	s.CreateDevice(device.NewCamera("camera-1", "Camera"))
	return s
}

func get(t *testing.T, s *store.Store, id string) *device.Device {
	t.Helper()
	d, ok := s.GetDevice(id)
	if !ok {
		t.Fatalf("device %s not found", id)
	}
	return d
}

func floatPtr(f float64) *float64 { return &f }

func TestUnitsWrongKindAndMissingAreNoOps(t *testing.T) {
	units := []Unit{
		TurnOnLight{ID: "lock-1"},
		TurnOffLight{ID: "camera-1"},
		Lock{ID: "light-1"},
		Unlock{ID: "thermostat-1"},
		StartRecording{ID: "lock-1"},
		StopRecording{ID: "light-1"},
		IncreaseTargetHeat{ID: "light-1", Amount: 1},
		DecreaseTargetHeat{ID: "camera-1", Amount: 1},
		SetTargetHeat{ID: "lock-1", Value: 20},
		ToggleDevice{ID: "missing"},
		DeleteDevice{ID: "missing"},
		AssignDeviceToRoom{DeviceID: "light-1", RoomID: "missing"},
		DeleteRoom{ID: "missing"},
		DeleteScene{ID: "missing"},
		DeleteAutomation{ID: "missing"},
		MarkSceneActive{ID: "missing"},
		UpdateDevice{Device: device.NewLight("missing", "x")},
		UpdateRoom{Room: location.NewRoom("missing", "x", "")},
		UpdateScene{Scene: automation.NewScene("missing", "x")},
		UpdateAutomation{Automation: &automation.Automation{ID: "missing"}},
	}

	s := newStore(t)
	before := s.ListDevices()

	for _, u := range units {
		if u.Execute(s) {
			t.Errorf("%s %+v reported a change", u.Name(), u)
		}
	}

	after := s.ListDevices()
	for i := range before {
		b, a := before[i], after[i]
		if b.On != a.On || b.IsLocked() != a.IsLocked() || b.IsRecording() != a.IsRecording() {
			t.Errorf("device %s changed by no-op units", b.ID)
		}
	}
	if get(t, s, "thermostat-1").Thermostat.TargetTemperature != device.DefaultTargetTemperature {
		t.Error("thermostat target changed by no-op units")
	}
}

func TestDeviceUnits(t *testing.T) {
	s := newStore(t)

	if !(TurnOnLight{ID: "light-1"}).Execute(s) || !get(t, s, "light-1").On {
		t.Error("TurnOnLight did not switch the light on")
	}
	if !(TurnOffLight{ID: "light-1"}).Execute(s) || get(t, s, "light-1").On {
		t.Error("TurnOffLight did not switch the light off")
	}

	(Unlock{ID: "lock-1"}).Execute(s)
	if d := get(t, s, "lock-1"); d.IsLocked() || d.On {
		t.Error("Unlock left the lock locked")
	}
	(ToggleDevice{ID: "lock-1"}).Execute(s)
	if d := get(t, s, "lock-1"); !d.IsLocked() || !d.On {
		t.Error("Toggle on an unlocked lock did not lock it")
	}

	(StartRecording{ID: "camera-1"}).Execute(s)
	if !get(t, s, "camera-1").IsRecording() {
		t.Error("StartRecording did not start")
	}
	(StopRecording{ID: "camera-1"}).Execute(s)
	if get(t, s, "camera-1").IsRecording() {
		t.Error("StopRecording did not stop")
	}
}

func TestThermostatUnits(t *testing.T) {
	s := newStore(t)

	(IncreaseTargetHeat{ID: "thermostat-1", Amount: 1.5}).Execute(s)
	if got := get(t, s, "thermostat-1").Thermostat.TargetTemperature; got != 23.5 {
		t.Errorf("after increase target = %v, want 23.5", got)
	}
	(DecreaseTargetHeat{ID: "thermostat-1", Amount: 20}).Execute(s)
	if got := get(t, s, "thermostat-1").Thermostat.TargetTemperature; got != device.MinTargetTemperature {
		t.Errorf("after decrease target = %v, want %v", got, device.MinTargetTemperature)
	}
	(SetTargetHeat{ID: "thermostat-1", Value: 99}).Execute(s)
	if got := get(t, s, "thermostat-1").Thermostat.TargetTemperature; got != device.MaxTargetTemperature {
		t.Errorf("after set target = %v, want %v", got, device.MaxTargetTemperature)
	}
}

func TestApplySceneAction(t *testing.T) {
	tests := []struct {
		name    string
		action  automation.SceneAction
		applied bool
	}{
		{name: "turn on any kind", action: automation.SceneAction{DeviceID: "thermostat-1", ActionType: automation.ActionTurnOn}, applied: true},
		{name: "lock on lock", action: automation.SceneAction{DeviceID: "lock-1", ActionType: automation.ActionLock}, applied: true},
		{name: "lock on light skipped", action: automation.SceneAction{DeviceID: "light-1", ActionType: automation.ActionLock}},
		{name: "record on camera", action: automation.SceneAction{DeviceID: "camera-1", ActionType: automation.ActionRecord}, applied: true},
		{name: "record on lock skipped", action: automation.SceneAction{DeviceID: "lock-1", ActionType: automation.ActionRecord}},
		{name: "set temp with value", action: automation.SceneAction{DeviceID: "thermostat-1", ActionType: automation.ActionSetTemp, Value: floatPtr(19)}, applied: true},
		{name: "set temp without value skipped", action: automation.SceneAction{DeviceID: "thermostat-1", ActionType: automation.ActionSetTemp}},
		{name: "set temp on light skipped", action: automation.SceneAction{DeviceID: "light-1", ActionType: automation.ActionSetTemp, Value: floatPtr(19)}},
		{name: "missing device skipped", action: automation.SceneAction{DeviceID: "ghost", ActionType: automation.ActionTurnOn}},
		{name: "unknown action skipped", action: automation.SceneAction{DeviceID: "light-1", ActionType: "DIM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if got := (ApplySceneAction{Action: tt.action}).Execute(s); got != tt.applied {
				t.Errorf("Execute() = %v, want %v", got, tt.applied)
			}
		})
	}
}

func TestSetSecurityModeArmedForcesDevices(t *testing.T) {
	s := newStore(t)
	(Unlock{ID: "lock-1"}).Execute(s)

	u := &SetSecurityMode{Mode: store.ModeArmed}
	if !u.Execute(s) {
		t.Fatal("Execute() = false")
	}

	if s.SecurityMode() != store.ModeArmed {
		t.Errorf("mode = %q, want armed", s.SecurityMode())
	}
	if !get(t, s, "lock-1").IsLocked() || !get(t, s, "camera-1").IsRecording() {
		t.Error("arming did not lock and record")
	}
	if len(u.Changed) != 2 || u.Changed[0] != "camera-1" || u.Changed[1] != "lock-1" {
		t.Errorf("Changed = %v, want [camera-1 lock-1]", u.Changed)
	}

	d := &SetSecurityMode{Mode: store.ModeDisarmed}
	d.Execute(s)
	if len(d.Changed) != 0 || !get(t, s, "camera-1").IsRecording() {
		t.Error("disarming touched devices")
	}
}

func TestSceneUnits(t *testing.T) {
	s := newStore(t)

	sc := automation.NewScene("scene-1", "Scene", automation.SceneAction{DeviceID: "light-1", ActionType: automation.ActionTurnOn})
	(CreateScene{Scene: sc}).Execute(s)
	(MarkSceneActive{ID: "scene-1"}).Execute(s)

	inv := &InvalidateScenes{DeviceID: "light-1"}
	if !inv.Execute(s) || len(inv.Cleared) != 1 {
		t.Errorf("InvalidateScenes cleared %v", inv.Cleared)
	}

	(MarkSceneActive{ID: "scene-1"}).Execute(s)
	(UpdateScene{Scene: automation.NewScene("scene-1", "Renamed")}).Execute(s)
	got, _ := s.GetScene("scene-1")
	if got.Name != "Renamed" || got.Active || len(got.Actions) != 0 {
		t.Errorf("after update scene = %+v", got)
	}
}

func TestAssignDeviceToRoomUnit(t *testing.T) {
	s := newStore(t)
	if !(AssignDeviceToRoom{DeviceID: "camera-1", RoomID: "room-1"}).Execute(s) {
		t.Fatal("Execute() = false")
	}
	if !get(t, s, "camera-1").InRoom("room-1") {
		t.Error("camera-1 not in room-1")
	}
}
