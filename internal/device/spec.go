package device

// Spec is the loosely typed external form of a device, as written in HTTP
// request bodies and seed files. Every state field is optional; absent
// fields keep the defaults of New.
type Spec struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Type   string  `json:"type" yaml:"type"`
	Online *bool   `json:"online,omitempty" yaml:"online"`
	On     *bool   `json:"on,omitempty" yaml:"on"`
	RoomID *string `json:"roomId,omitempty" yaml:"roomId"`

	Brightness         *int     `json:"brightness,omitempty" yaml:"brightness"`
	CurrentTemperature *float64 `json:"currentTemperature,omitempty" yaml:"currentTemperature"`
	TargetTemperature  *float64 `json:"targetTemperature,omitempty" yaml:"targetTemperature"`
	Locked             *bool    `json:"locked,omitempty" yaml:"locked"`
	Recording          *bool    `json:"recording,omitempty" yaml:"recording"`
	StreamURL          *string  `json:"streamUrl,omitempty" yaml:"streamUrl"`
}

// Kind parses s.Type.
func (s Spec) Kind() (Kind, error) {
	return ParseKind(s.Type)
}

// Build returns a device of the given kind carrying the fields of s.
// Fields belonging to other kinds are ignored and numeric values are
// clamped. For a lock, Locked wins over On when both are given.
func (s Spec) Build(kind Kind) *Device {
	d := New(kind, s.ID, s.Name)
	if s.Online != nil {
		d.Online = *s.Online
	}
	d.RoomID = cloneStringPtr(s.RoomID)
	if s.On != nil {
		d.SetOn(*s.On)
	}

	switch kind {
	case KindLight:
		if s.Brightness != nil {
			d.SetBrightness(*s.Brightness)
		}
	case KindThermostat:
		if s.CurrentTemperature != nil {
			d.Thermostat.CurrentTemperature = *s.CurrentTemperature
		}
		if s.TargetTemperature != nil {
			d.SetTargetTemperature(*s.TargetTemperature)
		}
	case KindLock:
		if s.Locked != nil {
			d.SetLocked(*s.Locked)
		}
	case KindCamera:
		if s.Recording != nil {
			d.SetRecording(*s.Recording)
		}
		d.Camera.StreamURL = cloneStringPtr(s.StreamURL)
	}
	return d
}
