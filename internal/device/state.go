package device

// Valid ranges. Inputs outside them are clamped, never rejected.
const (
	MinBrightness = 0
	MaxBrightness = 100

	MinTargetTemperature = 16.0
	MaxTargetTemperature = 30.0

	// DefaultTemperatureStep is the target change applied by a bare
	// increase/decrease request.
	DefaultTemperatureStep = 1.0
)

// ClampBrightness limits x to [MinBrightness, MaxBrightness].
func ClampBrightness(x int) int {
	return max(MinBrightness, min(MaxBrightness, x))
}

// ClampTargetTemperature limits x to [MinTargetTemperature, MaxTargetTemperature].
func ClampTargetTemperature(x float64) float64 {
	return max(MinTargetTemperature, min(MaxTargetTemperature, x))
}

// Normalize makes the device structurally valid for its Kind: it allocates
// the matching payload with defaults if missing, drops payloads belonging to
// other kinds, clamps numeric fields and re-syncs a lock's On with Locked.
//
// A lock without a payload starts locked. When a payload is present, Locked
// is authoritative and On follows it.
func (d *Device) Normalize() {
	switch d.Kind {
	case KindLight:
		if d.Light == nil {
			d.Light = &Light{Brightness: DefaultBrightness}
		}
		d.Light.Brightness = ClampBrightness(d.Light.Brightness)
		d.Thermostat, d.Lock, d.Camera = nil, nil, nil
	case KindThermostat:
		if d.Thermostat == nil {
			d.Thermostat = &Thermostat{
				CurrentTemperature: DefaultCurrentTemperature,
				TargetTemperature:  DefaultTargetTemperature,
			}
		}
		d.Thermostat.TargetTemperature = ClampTargetTemperature(d.Thermostat.TargetTemperature)
		d.Light, d.Lock, d.Camera = nil, nil, nil
	case KindLock:
		if d.Lock == nil {
			// A lock with no explicit state starts locked.
			d.Lock = &Lock{Locked: true}
		}
		d.On = d.Lock.Locked
		d.Light, d.Thermostat, d.Camera = nil, nil, nil
	case KindCamera:
		if d.Camera == nil {
			d.Camera = &Camera{}
		}
		d.Light, d.Thermostat, d.Lock = nil, nil, nil
	}
}

// SetOn sets the generic on/off state. On a lock it also sets Locked,
// since the two fields are one state under two names.
func (d *Device) SetOn(on bool) {
	d.On = on
	if d.Kind == KindLock {
		if d.Lock == nil {
			d.Lock = &Lock{}
		}
		d.Lock.Locked = on
	}
}

// Toggle flips the generic on/off state.
func (d *Device) Toggle() {
	d.SetOn(!d.On)
}

// SetBrightness sets a light's brightness, clamped to [0, 100].
// It reports false (and does nothing) when the device is not a light.
func (d *Device) SetBrightness(brightness int) bool {
	if d.Kind != KindLight {
		return false
	}
	if d.Light == nil {
		d.Light = &Light{}
	}
	d.Light.Brightness = ClampBrightness(brightness)
	return true
}

// SetTargetTemperature sets a thermostat's target, clamped to [16, 30].
// It reports false when the device is not a thermostat.
func (d *Device) SetTargetTemperature(target float64) bool {
	if d.Kind != KindThermostat {
		return false
	}
	if d.Thermostat == nil {
		d.Thermostat = &Thermostat{CurrentTemperature: DefaultCurrentTemperature}
	}
	d.Thermostat.TargetTemperature = ClampTargetTemperature(target)
	return true
}

// IncreaseTargetTemperature raises the target by amount. The clamp is
// applied after the delta, so repeated increases saturate at the maximum.
func (d *Device) IncreaseTargetTemperature(amount float64) bool {
	return d.SetTargetTemperature(d.targetTemperature() + amount)
}

// DecreaseTargetTemperature lowers the target by amount, saturating at the minimum.
func (d *Device) DecreaseTargetTemperature(amount float64) bool {
	return d.SetTargetTemperature(d.targetTemperature() - amount)
}

func (d *Device) targetTemperature() float64 {
	if d.Thermostat == nil {
		return DefaultTargetTemperature
	}
	return d.Thermostat.TargetTemperature
}

// SetLocked sets a lock's state and keeps On in sync.
// It reports false when the device is not a lock.
func (d *Device) SetLocked(locked bool) bool {
	if d.Kind != KindLock {
		return false
	}
	d.SetOn(locked)
	return true
}

// SetRecording starts or stops a camera recording.
// It reports false when the device is not a camera.
func (d *Device) SetRecording(recording bool) bool {
	if d.Kind != KindCamera {
		return false
	}
	if d.Camera == nil {
		d.Camera = &Camera{}
	}
	d.Camera.Recording = recording
	return true
}

// IsLocked reports whether the device is a lock in the locked state.
func (d *Device) IsLocked() bool {
	return d.Kind == KindLock && d.Lock != nil && d.Lock.Locked
}

// IsRecording reports whether the device is a camera that is recording.
func (d *Device) IsRecording() bool {
	return d.Kind == KindCamera && d.Camera != nil && d.Camera.Recording
}
