package location

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRoomMembership(t *testing.T) {
	r := NewRoom("room-living", "Living Room", "Main living area")

	r.AddDevice("light-1")
	r.AddDevice("light-1")
	r.AddDevice("lock-1")

	if len(r.DeviceIDs) != 2 {
		t.Fatalf("len(DeviceIDs) = %d, want 2", len(r.DeviceIDs))
	}
	if !r.HasDevice("light-1") {
		t.Error("HasDevice(light-1) = false")
	}
	if !r.RemoveDevice("light-1") {
		t.Error("RemoveDevice(light-1) = false, want true")
	}
	if r.RemoveDevice("light-1") {
		t.Error("second RemoveDevice(light-1) = true, want false")
	}
}

func TestRoomZeroValueAddDevice(t *testing.T) {
	var r Room
	r.AddDevice("camera-1")
	if !r.HasDevice("camera-1") {
		t.Error("AddDevice on zero Room did not add")
	}
	if r.RemoveDevice("missing") {
		t.Error("RemoveDevice(missing) = true")
	}
}

func TestRoomDeepCopy(t *testing.T) {
	r := NewRoom("room-1", "Room", "")
	r.AddDevice("a")

	cpy := r.DeepCopy()
	cpy.AddDevice("b")
	cpy.Name = "Other"

	if r.HasDevice("b") || r.Name != "Room" {
		t.Error("modifying copy changed the original")
	}
}

func TestIDSetJSON(t *testing.T) {
	r := NewRoom("room-1", "Room", "desc")
	r.AddDevice("b")
	r.AddDevice("a")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"id":"room-1","name":"Room","description":"desc","deviceIds":["a","b"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Room
	if err := json.Unmarshal([]byte(`{"id":"r","deviceIds":["x","x","y"]}`), &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(back.DeviceIDs) != 2 {
		t.Errorf("decoded %d ids, want duplicates collapsed to 2", len(back.DeviceIDs))
	}
}

func TestIDSetJSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewRoom("r", "R", ""))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"id":"r","name":"R","description":"","deviceIds":[]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestIDSetYAML(t *testing.T) {
	var r Room
	if err := yaml.Unmarshal([]byte("id: r\ndeviceIds: [light-1, lock-1, light-1]\n"), &r); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if len(r.DeviceIDs) != 2 || !r.HasDevice("lock-1") {
		t.Errorf("DeviceIDs = %v", r.DeviceIDs.Sorted())
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Kitchen"); err != nil {
		t.Errorf("ValidateName(Kitchen) = %v", err)
	}
	if err := ValidateName("  "); err == nil {
		t.Error("ValidateName(blank) = nil, want error")
	}
}
