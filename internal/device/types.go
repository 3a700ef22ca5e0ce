package device

// Kind identifies which capability set a Device carries.
// The set is closed: every dispatch on Kind switches over all four values.
type Kind string

const (
	KindLight      Kind = "light"
	KindThermostat Kind = "thermostat"
	KindLock       Kind = "lock"
	KindCamera     Kind = "camera"
)

// AllKinds returns every supported device kind.
func AllKinds() []Kind {
	return []Kind{
		KindLight,
		KindThermostat,
		KindLock,
		KindCamera,
	}
}

// Device is a simulated controllable device.
//
// Kind is the variant tag. Exactly one of the embedded payload pointers is
// non-nil after Normalize, and it is the one matching Kind. The payloads are
// embedded so their fields appear flat in JSON, e.g.
//
//	{"id":"light-1","type":"light","on":true,"brightness":80}
type Device struct {
	// Identity
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`

	// Generic state
	Online bool `json:"online"`
	On     bool `json:"on"`

	// Location (nil when the device is not assigned to a room)
	RoomID *string `json:"roomId,omitempty"`

	// Kind-specific payload
	*Light
	*Thermostat
	*Lock
	*Camera
}

// Light is the payload of a KindLight device.
type Light struct {
	Brightness int `json:"brightness"`
}

// Thermostat is the payload of a KindThermostat device.
type Thermostat struct {
	CurrentTemperature float64 `json:"currentTemperature"`
	TargetTemperature  float64 `json:"targetTemperature"`
}

// Lock is the payload of a KindLock device.
// Locked mirrors Device.On; the two are always equal.
type Lock struct {
	Locked bool `json:"locked"`
}

// Camera is the payload of a KindCamera device.
type Camera struct {
	Recording bool    `json:"recording"`
	StreamURL *string `json:"streamUrl,omitempty"`
}

// Defaults applied by the constructors and by Normalize.
const (
	DefaultBrightness         = 100
	DefaultCurrentTemperature = 20.0
	DefaultTargetTemperature  = 22.0
)

// New returns a device of the given kind with its default payload.
// Devices start online and off, except locks which start locked.
func New(kind Kind, id, name string) *Device {
	d := &Device{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Online: true,
	}
	d.Normalize()
	return d
}

// NewLight returns a light at full brightness, switched off.
func NewLight(id, name string) *Device { return New(KindLight, id, name) }

// NewThermostat returns a thermostat reading 20°C with a 22°C target.
func NewThermostat(id, name string) *Device { return New(KindThermostat, id, name) }

// NewLock returns a locked lock.
func NewLock(id, name string) *Device { return New(KindLock, id, name) }

// NewCamera returns a camera that is not recording.
func NewCamera(id, name string) *Device { return New(KindCamera, id, name) }

// InRoom reports whether the device is assigned to roomID.
func (d *Device) InRoom(roomID string) bool {
	return d.RoomID != nil && *d.RoomID == roomID
}

// DeepCopy creates a complete independent copy of the Device.
// Payload pointers are cloned so modifications to the copy
// do not affect the original.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}

	cpy := *d

	cpy.RoomID = cloneStringPtr(d.RoomID)
	if d.Light != nil {
		l := *d.Light
		cpy.Light = &l
	}
	if d.Thermostat != nil {
		t := *d.Thermostat
		cpy.Thermostat = &t
	}
	if d.Lock != nil {
		l := *d.Lock
		cpy.Lock = &l
	}
	if d.Camera != nil {
		c := *d.Camera
		c.StreamURL = cloneStringPtr(d.Camera.StreamURL)
		cpy.Camera = &c
	}

	return &cpy
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
