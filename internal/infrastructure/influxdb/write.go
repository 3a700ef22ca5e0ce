package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/store"
)

// Measurement names.
const (
	MeasurementDeviceState  = "device_state"
	MeasurementSecurityMode = "security_mode"
)

// DevicePoint returns a device_state point for d.
//
// Tags are device_id, kind and, when assigned, room_id. Fields are on and
// online plus the kind's own state.
func DevicePoint(d *device.Device, at time.Time) *write.Point {
	tags := map[string]string{
		"device_id": d.ID,
		"kind":      string(d.Kind),
	}
	if d.RoomID != nil {
		tags["room_id"] = *d.RoomID
	}

	fields := map[string]any{
		"on":     d.On,
		"online": d.Online,
	}
	switch d.Kind {
	case device.KindLight:
		if d.Light != nil {
			fields["brightness"] = d.Brightness
		}
	case device.KindThermostat:
		if d.Thermostat != nil {
			fields["current_temperature"] = d.CurrentTemperature
			fields["target_temperature"] = d.TargetTemperature
		}
	case device.KindLock:
		fields["locked"] = d.IsLocked()
	case device.KindCamera:
		fields["recording"] = d.IsRecording()
	}

	return write.NewPoint(MeasurementDeviceState, tags, fields, at)
}

// SecurityPoint returns a security_mode point with armed as 0 or 1.
func SecurityPoint(mode store.SecurityMode, at time.Time) *write.Point {
	armed := 0
	if mode == store.ModeArmed {
		armed = 1
	}
	return write.NewPoint(MeasurementSecurityMode, nil, map[string]any{"armed": armed}, at)
}

// WritePoint queues p. The write is non-blocking; it is batched and sent
// asynchronously, and failures reach the SetOnError callback.
func (c *Client) WritePoint(p *write.Point) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(p)
}
