package seed

import (
	"github.com/nerrad567/homecore/internal/automation"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/location"
	"github.com/nerrad567/homecore/internal/store"
)

// Default returns the built-in demo home: three rooms, two devices of each
// kind and an "Evening mode" scene, disarmed.
func Default() *Home {
	const (
		living  = "room-living"
		bedroom = "room-bedroom"
		kitchen = "room-kitchen"
	)

	in := func(d *device.Device, roomID string) *device.Device {
		d.RoomID = &roomID
		return d
	}

	return &Home{
		Rooms: []*location.Room{
			location.NewRoom(living, "Living Room", "Main living area"),
			location.NewRoom(bedroom, "Master Bedroom", "Main bedroom"),
			location.NewRoom(kitchen, "Kitchen", "Kitchen area"),
		},
		Devices: []*device.Device{
			in(device.NewLight("light-1", "Living Room Light"), living),
			in(device.NewLight("light-2", "Bedroom Light"), bedroom),
			in(device.NewThermostat("thermostat-1", "Living Room Thermostat"), living),
			in(device.NewThermostat("thermostat-2", "Bedroom Thermostat"), bedroom),
			in(device.NewLock("lock-1", "Living Room Door Lock"), living),
			in(device.NewLock("lock-2", "Bedroom Door Lock"), bedroom),
			in(device.NewCamera("camera-1", "Living Room Camera"), living),
			in(device.NewCamera("camera-2", "Kitchen Camera"), kitchen),
		},
		Scenes: []*automation.Scene{
			automation.NewScene("scene-evening", "Evening mode",
				automation.SceneAction{DeviceID: "light-1", ActionType: automation.ActionTurnOn},
				automation.SceneAction{DeviceID: "thermostat-1", ActionType: automation.ActionTurnOn},
			),
		},
		Security: store.ModeDisarmed,
	}
}
