package home

import (
	"strconv"

	"github.com/nerrad567/homecore/internal/audit"
	"github.com/nerrad567/homecore/internal/command"
	"github.com/nerrad567/homecore/internal/device"
)

// ListDevices returns every device ordered by id.
func (c *Coordinator) ListDevices() []*device.Device {
	return c.store.ListDevices()
}

// GetDevice returns the device with the given id.
func (c *Coordinator) GetDevice(id string) (*device.Device, bool) {
	return c.store.GetDevice(id)
}

// ListDevicesByKind returns every device of the given kind ordered by id.
func (c *Coordinator) ListDevicesByKind(kind device.Kind) []*device.Device {
	all := c.store.ListDevices()
	out := make([]*device.Device, 0, len(all))
	for _, d := range all {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// GetDeviceOfKind returns the device with the given id only if it has the
// given kind.
func (c *Coordinator) GetDeviceOfKind(id string, kind device.Kind) (*device.Device, bool) {
	d, ok := c.store.GetDevice(id)
	if !ok || d.Kind != kind {
		return nil, false
	}
	return d, true
}

// CreateDevice stores a new device and returns it as stored. An empty id is
// replaced with a generated one. A roomId naming an existing room makes the
// device a member of it; an unknown roomId is dropped. Creating over an
// existing id replaces that device and invalidates scenes targeting it.
func (c *Coordinator) CreateDevice(d *device.Device) *device.Device {
	d = d.DeepCopy()
	if d.ID == "" {
		d.ID = device.GenerateID()
	}

	var created *device.Device
	c.run(func(b *batch) bool {
		_, replaced := c.store.GetDevice(d.ID)
		c.exec(command.CreateDevice{Device: d})
		if replaced {
			c.invalidateScenes(b, d.ID)
		}
		created, _ = c.store.GetDevice(d.ID)
		b.add(EventDeviceUpdated, d.ID, created)
		if created.RoomID != nil {
			if r, ok := c.store.GetRoom(*created.RoomID); ok {
				b.add(EventRoomUpdated, r.ID, r)
			}
		}
		return true
	})
	return created
}

// UpdateDevice replaces an existing device, keeping its room membership.
// It returns false if the device does not exist.
func (c *Coordinator) UpdateDevice(d *device.Device) (*device.Device, bool) {
	var updated *device.Device
	ok := c.run(func(b *batch) bool {
		if !c.exec(command.UpdateDevice{Device: d}) {
			return false
		}
		c.invalidateScenes(b, d.ID)
		updated, _ = c.store.GetDevice(d.ID)
		b.add(EventDeviceUpdated, d.ID, updated)
		return true
	})
	return updated, ok
}

// DeleteDevice removes a device, its room membership and every scene
// action that targets it. It returns false if the device does not exist.
func (c *Coordinator) DeleteDevice(id string) bool {
	return c.run(func(b *batch) bool {
		before, ok := c.store.GetDevice(id)
		if !ok {
			return false
		}
		var touched []string
		for _, sc := range c.store.ListScenes() {
			if sc.Targets(id) {
				touched = append(touched, sc.ID)
			}
		}

		if !c.exec(command.DeleteDevice{ID: id}) {
			return false
		}

		b.add(EventDeviceDeleted, id, nil)
		if before.RoomID != nil {
			if r, ok := c.store.GetRoom(*before.RoomID); ok {
				b.add(EventRoomUpdated, r.ID, r)
			}
		}
		for _, sid := range touched {
			b.sceneUpdated(sid)
		}
		return true
	})
}

// ToggleDevice flips the on state of a device of any kind.
func (c *Coordinator) ToggleDevice(id string) bool {
	return c.mutateDevice(command.ToggleDevice{ID: id}, id, nil)
}

// TurnOnLight switches a light on.
func (c *Coordinator) TurnOnLight(id string) bool {
	return c.mutateDevice(command.TurnOnLight{ID: id}, id, func(b *batch) {
		b.logActivity(id, "turned on", "Light turned on", audit.IconLight)
	})
}

// TurnOffLight switches a light off.
func (c *Coordinator) TurnOffLight(id string) bool {
	return c.mutateDevice(command.TurnOffLight{ID: id}, id, func(b *batch) {
		b.logActivity(id, "turned off", "Light turned off", audit.IconLight)
	})
}

// IncreaseTargetHeat raises a thermostat's target by amount, or by
// device.DefaultTemperatureStep when amount is nil.
func (c *Coordinator) IncreaseTargetHeat(id string, amount *float64) bool {
	return c.mutateDevice(command.IncreaseTargetHeat{ID: id, Amount: stepOrDefault(amount)}, id, nil)
}

// DecreaseTargetHeat lowers a thermostat's target by amount, or by
// device.DefaultTemperatureStep when amount is nil.
func (c *Coordinator) DecreaseTargetHeat(id string, amount *float64) bool {
	return c.mutateDevice(command.DecreaseTargetHeat{ID: id, Amount: stepOrDefault(amount)}, id, nil)
}

// SetTargetHeat sets a thermostat's target. The logged value is the one
// actually stored, after clamping.
func (c *Coordinator) SetTargetHeat(id string, value float64) bool {
	return c.mutateDevice(command.SetTargetHeat{ID: id, Value: value}, id, func(b *batch) {
		target := device.ClampTargetTemperature(value)
		if d, ok := c.store.GetDevice(id); ok && d.Thermostat != nil {
			target = d.Thermostat.TargetTemperature
		}
		b.logActivity(id, "set to "+formatCelsius(target)+"°C", "Thermostat adjusted", audit.IconThermostat)
	})
}

// Lock locks a lock.
func (c *Coordinator) Lock(id string) bool {
	return c.mutateDevice(command.Lock{ID: id}, id, func(b *batch) {
		b.logActivity(id, "locked", "Door locked", audit.IconLock)
	})
}

// Unlock unlocks a lock, then disarms the system if nothing is left
// locked or recording.
func (c *Coordinator) Unlock(id string) bool {
	return c.mutateDevice(command.Unlock{ID: id}, id, func(b *batch) {
		b.logActivity(id, "unlocked", "Door unlocked", audit.IconLock)
		c.disarmIfAllSafe(b)
	})
}

// StartRecording starts a camera recording.
func (c *Coordinator) StartRecording(id string) bool {
	return c.mutateDevice(command.StartRecording{ID: id}, id, nil)
}

// StopRecording stops a camera recording, then disarms the system if
// nothing is left locked or recording.
func (c *Coordinator) StopRecording(id string) bool {
	return c.mutateDevice(command.StopRecording{ID: id}, id, func(b *batch) {
		c.disarmIfAllSafe(b)
	})
}

// AssignDeviceToRoom moves a device into a room. It returns false if
// either id is unknown.
func (c *Coordinator) AssignDeviceToRoom(deviceID, roomID string) bool {
	return c.run(func(b *batch) bool {
		before, ok := c.store.GetDevice(deviceID)
		if !ok {
			return false
		}
		if !c.exec(command.AssignDeviceToRoom{DeviceID: deviceID, RoomID: roomID}) {
			return false
		}

		c.invalidateScenes(b, deviceID)
		b.deviceUpdated(deviceID)
		if before.RoomID != nil && *before.RoomID != roomID {
			if r, ok := c.store.GetRoom(*before.RoomID); ok {
				b.add(EventRoomUpdated, r.ID, r)
			}
		}
		if r, ok := c.store.GetRoom(roomID); ok {
			b.add(EventRoomUpdated, r.ID, r)
		}
		return true
	})
}

// mutateDevice runs a single-device unit. When it applies, then runs, in
// order, and scenes targeting the device are invalidated.
func (c *Coordinator) mutateDevice(u command.Unit, id string, then func(b *batch)) bool {
	return c.run(func(b *batch) bool {
		if !c.exec(u) {
			return false
		}
		b.deviceUpdated(id)
		if then != nil {
			then(b)
		}
		c.invalidateScenes(b, id)
		return true
	})
}

// invalidateScenes deactivates every active scene targeting deviceID.
func (c *Coordinator) invalidateScenes(b *batch, deviceID string) {
	u := &command.InvalidateScenes{DeviceID: deviceID}
	c.exec(u)
	if len(u.Cleared) == 0 {
		return
	}

	c.metrics.ObserveSceneInvalidations(len(u.Cleared))
	c.logger.Debug("scenes invalidated", "device_id", deviceID, "scenes", u.Cleared)
	for _, id := range u.Cleared {
		b.sceneUpdated(id)
	}
}

func stepOrDefault(amount *float64) float64 {
	if amount == nil {
		return device.DefaultTemperatureStep
	}
	return *amount
}

// formatCelsius renders whole degrees with one decimal ("22.0") and keeps
// the precision of fractional ones ("21.25").
func formatCelsius(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
