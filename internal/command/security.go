package command

import (
	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/store"
)

// SetSecurityMode sets the security mode. Arming also locks every lock and
// starts every camera recording; disarming touches no device.
//
// Changed receives the ids of devices whose state was forced.
type SetSecurityMode struct {
	Mode    store.SecurityMode
	Changed []string
}

func (*SetSecurityMode) Name() string { return "security.set_mode" }

func (c *SetSecurityMode) Execute(s *store.Store) bool {
	s.SetSecurityMode(c.Mode)
	c.Changed = nil

	if c.Mode == store.ModeArmed {
		c.Changed = s.UpdateDevices(func(d *device.Device) bool {
			switch d.Kind {
			case device.KindLock:
				if d.IsLocked() {
					return false
				}
				return d.SetLocked(true)
			case device.KindCamera:
				if d.IsRecording() {
					return false
				}
				return d.SetRecording(true)
			case device.KindLight, device.KindThermostat:
			}
			return false
		})
	}
	return true
}
