package mqtt

import "fmt"

// TopicPrefix is the root of every topic homecore publishes.
const TopicPrefix = "homecore"

// Topics builds homecore topic names.
//
//	topic := mqtt.Topics{}.DeviceState("light-1")
//	// homecore/device/light-1/state
type Topics struct{}

// DeviceState is the retained JSON state of one device.
func (Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/device/%s/state", TopicPrefix, deviceID)
}

// SecurityMode is the retained security mode.
func (Topics) SecurityMode() string {
	return TopicPrefix + "/security/mode"
}

// Activity carries each new activity log entry.
func (Topics) Activity() string {
	return TopicPrefix + "/activity"
}

// SceneActivated fires once per scene activation.
func (Topics) SceneActivated(sceneID string) string {
	return fmt.Sprintf("%s/scene/%s/activated", TopicPrefix, sceneID)
}

// SystemStatus is the retained online/offline status, including the LWT.
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// AllDeviceStates matches every device state topic.
func (Topics) AllDeviceStates() string {
	return TopicPrefix + "/device/+/state"
}
