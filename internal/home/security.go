package home

import (
	"github.com/nerrad567/homecore/internal/audit"
	"github.com/nerrad567/homecore/internal/command"
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/store"
)

// SecurityStatus is the payload of security.changed events and of the
// status query.
type SecurityStatus struct {
	Status store.SecurityMode `json:"status"`
}

// SecurityStatus returns the current security mode.
func (c *Coordinator) SecurityStatus() SecurityStatus {
	return SecurityStatus{Status: c.store.SecurityMode()}
}

// Arm arms the system, locking every lock and starting every camera.
// Scenes targeting a device it had to change are invalidated. Arming
// never evaluates auto-disarm, even with no locks or cameras.
func (c *Coordinator) Arm() {
	c.run(func(b *batch) bool {
		c.setMode(b, store.ModeArmed)
		b.logActivity(SecuritySystemID, "armed", "System armed", audit.IconSecurity)
		return true
	})
}

// Disarm disarms the system. No device is touched.
func (c *Coordinator) Disarm() {
	c.run(func(b *batch) bool {
		c.disarm(b)
		return true
	})
}

func (c *Coordinator) disarm(b *batch) {
	c.setMode(b, store.ModeDisarmed)
	b.logActivity(SecuritySystemID, "disarmed", "System disarmed", audit.IconSecurity)
}

func (c *Coordinator) setMode(b *batch, mode store.SecurityMode) {
	u := &command.SetSecurityMode{Mode: mode}
	c.exec(u)
	c.logger.Info("security mode set", "mode", mode, "forced_devices", len(u.Changed))

	for _, id := range u.Changed {
		b.deviceUpdated(id)
		c.invalidateScenes(b, id)
	}
	b.add(EventSecurityChanged, "", SecurityStatus{Status: mode})
}

// disarmIfAllSafe disarms when no lock is locked and no camera is
// recording. It runs even if the system is already disarmed.
func (c *Coordinator) disarmIfAllSafe(b *batch) {
	for _, d := range c.store.ListDevices() {
		switch d.Kind {
		case device.KindLock:
			if d.IsLocked() {
				return
			}
		case device.KindCamera:
			if d.IsRecording() {
				return
			}
		case device.KindLight, device.KindThermostat:
		}
	}

	c.metrics.ObserveAutoDisarm()
	c.logger.Info("no lock locked and no camera recording, disarming")
	c.disarm(b)
}
