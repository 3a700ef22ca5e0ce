// Package device defines the simulated devices of a home.
//
// A Device is a closed tagged variant: Kind selects one of four payloads
// (Light, Thermostat, Lock, Camera) and exactly that payload is populated.
// Every switch over Kind covers all four values.
//
// # Invariants
//
//   - Light brightness stays within [0, 100].
//   - Thermostat target stays within [16, 30] °C.
//   - A lock's Locked always equals its On.
//
// Out-of-range inputs are clamped, never rejected. Kind-specific mutators
// applied to the wrong kind do nothing and report false.
//
// # Usage
//
//	d := device.NewThermostat("thermostat-1", "Living Room Thermostat")
//	d.IncreaseTargetTemperature(device.DefaultTemperatureStep)
//
//	// Devices decoded from JSON must be normalised before use
//	var in device.Device
//	_ = json.Unmarshal(body, &in)
//	in.Normalize()
//
// Devices are plain values with no locking of their own. The store owns
// concurrency and hands out copies made with DeepCopy.
package device
