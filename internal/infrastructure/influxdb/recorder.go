package influxdb

import (
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/home"
)

// PointWriter accepts points without blocking.
type PointWriter interface {
	WritePoint(p *write.Point)
}

// Recorder is a home.Listener that records device and security state
// changes as InfluxDB points.
type Recorder struct {
	w PointWriter
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w PointWriter) *Recorder {
	return &Recorder{w: w}
}

// HandleEvent writes a point for device.updated and security.changed
// events and ignores the rest.
func (r *Recorder) HandleEvent(ev home.Event) {
	switch ev.Type {
	case home.EventDeviceUpdated:
		if d, ok := ev.Payload.(*device.Device); ok {
			r.w.WritePoint(DevicePoint(d, ev.Timestamp))
		}
	case home.EventSecurityChanged:
		if s, ok := ev.Payload.(home.SecurityStatus); ok {
			r.w.WritePoint(SecurityPoint(s.Status, ev.Timestamp))
		}
	}
}
