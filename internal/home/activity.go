package home

import (
	"github.com/nerrad567/homecore/internal/audit"
)

const (
	// SecuritySystemID is the pseudo-device id used for arm/disarm entries.
	SecuritySystemID   = "security-system"
	securitySystemName = "Security System"
	unknownDeviceName  = "Unknown Device"

	timestampLayout = "15:04"
)

// ListActivity returns the activity log, newest first.
func (c *Coordinator) ListActivity() []audit.Entry {
	return c.store.Activity(0)
}

// logActivity appends an entry about subjectID and queues its event.
//
// The subject is resolved in order: a device (details gain " in {room}"
// when it has one), the security system, a scene (details gain
// ": {scene}"), and finally "Unknown Device".
func (b *batch) logActivity(subjectID, action, details string, icon audit.IconType) {
	c := b.c
	name := unknownDeviceName

	if d, ok := c.store.GetDevice(subjectID); ok {
		name = d.Name
		if d.RoomID != nil {
			if r, ok := c.store.GetRoom(*d.RoomID); ok {
				details += " in " + r.Name
			}
		}
	} else if subjectID == SecuritySystemID {
		name = securitySystemName
	} else if sc, ok := c.store.GetScene(subjectID); ok {
		name = sc.Name
		details += ": " + sc.Name
	}

	entry := c.store.AppendActivity(audit.Entry{
		Timestamp:  c.now().In(c.loc).Format(timestampLayout),
		DeviceName: name,
		Action:     action,
		Details:    details,
		IconType:   icon,
	})
	c.metrics.ObserveActivity(string(icon))
	c.logger.Info("activity", "device", name, "action", action, "details", details)

	b.add(EventActivityAppended, entry.ID, entry)
}
