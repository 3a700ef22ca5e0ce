package api

import (
	"net/http"
	"testing"

	"github.com/nerrad567/homecore/internal/device"
	"github.com/nerrad567/homecore/internal/location"
	"github.com/nerrad567/homecore/internal/store"
)

func TestListDevices(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/devices", "")
	wantStatus(t, w, http.StatusOK)

	devices := decode[[]device.Device](t, w)
	if len(devices) != 8 {
		t.Fatalf("len = %d, want 8", len(devices))
	}
	if devices[0].ID != "camera-1" {
		t.Errorf("first id = %q, want camera-1 (ordered by id)", devices[0].ID)
	}
}

func TestGetDevice(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/devices/thermostat-1", "")
	wantStatus(t, w, http.StatusOK)

	d := decode[device.Device](t, w)
	if d.Kind != device.KindThermostat || d.Thermostat == nil {
		t.Fatalf("device = %+v, want a thermostat", d)
	}
	if d.Thermostat.TargetTemperature != device.DefaultTargetTemperature {
		t.Errorf("target = %v, want %v", d.Thermostat.TargetTemperature, device.DefaultTargetTemperature)
	}

	w = do(t, srv, http.MethodGet, "/api/devices/nope", "")
	wantStatus(t, w, http.StatusNotFound)
	if e := decode[Error](t, w); e.Code != ErrCodeNotFound {
		t.Errorf("code = %q, want %q", e.Code, ErrCodeNotFound)
	}
}

func TestCreateDevice(t *testing.T) {
	srv, coord := testServer(t, "")

	w := do(t, srv, http.MethodPost, "/api/devices",
		`{"name":"Hall Light","type":"Light","brightness":140,"roomId":"room-kitchen"}`)
	wantStatus(t, w, http.StatusCreated)

	d := decode[device.Device](t, w)
	if d.ID == "" {
		t.Fatal("expected a generated id")
	}
	if d.Kind != device.KindLight || d.Light == nil || d.Light.Brightness != device.MaxBrightness {
		t.Errorf("device = %+v, want light with clamped brightness", d)
	}

	room, _ := coord.GetRoom("room-kitchen")
	if !room.HasDevice(d.ID) {
		t.Error("created device should join the named room")
	}
}

func TestCreateDevice_BadRequest(t *testing.T) {
	srv, _ := testServer(t, "")

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"name":`},
		{"empty body", ``},
		{"unknown type", `{"name":"Fan","type":"fan"}`},
		{"missing type", `{"name":"Fan"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/devices", tt.body)
			wantStatus(t, w, http.StatusBadRequest)
			if e := decode[Error](t, w); e.Code != ErrCodeBadRequest {
				t.Errorf("code = %q, want %q", e.Code, ErrCodeBadRequest)
			}
		})
	}
}

func TestUpdateDevice(t *testing.T) {
	srv, _ := testServer(t, "")

	// No type: the stored kind is used. Room membership is kept.
	w := do(t, srv, http.MethodPut, "/api/devices/light-1", `{"name":"Reading Lamp","on":true,"brightness":40}`)
	wantStatus(t, w, http.StatusOK)

	d := decode[device.Device](t, w)
	if d.ID != "light-1" || d.Name != "Reading Lamp" || !d.On || d.Light.Brightness != 40 {
		t.Errorf("device = %+v", d)
	}
	if d.RoomID == nil || *d.RoomID != "room-living" {
		t.Errorf("roomId = %v, want room-living", d.RoomID)
	}

	wantStatus(t, do(t, srv, http.MethodPut, "/api/devices/light-1", `{"name":"x","type":"lock"}`), http.StatusBadRequest)
	wantStatus(t, do(t, srv, http.MethodPut, "/api/devices/light-1", `{"name":"x","type":"fan"}`), http.StatusBadRequest)
	wantStatus(t, do(t, srv, http.MethodPut, "/api/devices/nope", `{"name":"x"}`), http.StatusNotFound)
}

func TestDeleteDevice(t *testing.T) {
	srv, coord := testServer(t, "")

	wantStatus(t, do(t, srv, http.MethodDelete, "/api/devices/light-1", ""), http.StatusNoContent)
	wantStatus(t, do(t, srv, http.MethodGet, "/api/devices/light-1", ""), http.StatusNotFound)
	wantStatus(t, do(t, srv, http.MethodDelete, "/api/devices/light-1", ""), http.StatusNotFound)

	room, _ := coord.GetRoom("room-living")
	if room.HasDevice("light-1") {
		t.Error("deleted device should leave its room")
	}
	sc, _ := coord.GetScene("scene-evening")
	if sc.Targets("light-1") {
		t.Error("deleted device should be removed from scene actions")
	}
}

func TestToggleDevice(t *testing.T) {
	srv, coord := testServer(t, "")

	wantStatus(t, do(t, srv, http.MethodPost, "/api/devices/lock-1/toggle", ""), http.StatusNoContent)
	d, _ := coord.GetDevice("lock-1")
	if d.IsLocked() || d.On {
		t.Error("toggle should unlock a locked lock")
	}

	wantStatus(t, do(t, srv, http.MethodPost, "/api/devices/nope/toggle", ""), http.StatusNotFound)
}

// ─── Per-kind routes ───────────────────────────────────────────────

func TestKindRoutes_List(t *testing.T) {
	srv, _ := testServer(t, "")

	tests := []struct {
		path string
		kind device.Kind
	}{
		{"/api/lights", device.KindLight},
		{"/api/thermostats", device.KindThermostat},
		{"/api/locks", device.KindLock},
		{"/api/cameras", device.KindCamera},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, tt.path, "")
			wantStatus(t, w, http.StatusOK)
			devices := decode[[]device.Device](t, w)
			if len(devices) != 2 {
				t.Fatalf("len = %d, want 2", len(devices))
			}
			for _, d := range devices {
				if d.Kind != tt.kind {
					t.Errorf("%s has kind %q, want %q", d.ID, d.Kind, tt.kind)
				}
			}
		})
	}
}

func TestKindRoutes_OtherKindIsNotFound(t *testing.T) {
	srv, coord := testServer(t, "")

	wantStatus(t, do(t, srv, http.MethodGet, "/api/lights/light-1", ""), http.StatusOK)
	wantStatus(t, do(t, srv, http.MethodGet, "/api/thermostats/light-1", ""), http.StatusNotFound)
	wantStatus(t, do(t, srv, http.MethodPut, "/api/locks/light-1", `{"name":"x"}`), http.StatusNotFound)
	wantStatus(t, do(t, srv, http.MethodDelete, "/api/cameras/light-1", ""), http.StatusNotFound)

	if _, ok := coord.GetDevice("light-1"); !ok {
		t.Error("delete through another kind's route must not remove the device")
	}
}

func TestKindRoutes_CreateForcesKind(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodPost, "/api/locks", `{"name":"Garage","type":"camera","locked":false}`)
	wantStatus(t, w, http.StatusCreated)

	d := decode[device.Device](t, w)
	if d.Kind != device.KindLock || d.Lock == nil {
		t.Fatalf("device = %+v, want a lock", d)
	}
	if d.Lock.Locked || d.On {
		t.Error("locked:false should create an unlocked lock")
	}
}

func TestKindRoutes_Update(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodPut, "/api/cameras/camera-2", `{"name":"Back Yard","streamUrl":"rtsp://cam/2"}`)
	wantStatus(t, w, http.StatusOK)

	d := decode[device.Device](t, w)
	if d.Kind != device.KindCamera || d.Camera.StreamURL == nil || *d.Camera.StreamURL != "rtsp://cam/2" {
		t.Errorf("device = %+v", d)
	}
}

func TestLightActions(t *testing.T) {
	srv, coord := testServer(t, "")

	wantStatus(t, do(t, srv, http.MethodPost, "/api/lights/light-2/turn-on", ""), http.StatusNoContent)
	if d, _ := coord.GetDevice("light-2"); !d.On {
		t.Error("light-2 should be on")
	}

	wantStatus(t, do(t, srv, http.MethodPost, "/api/lights/light-2/turn-off", ""), http.StatusNoContent)
	if d, _ := coord.GetDevice("light-2"); d.On {
		t.Error("light-2 should be off")
	}

	// A thermostat id on a light route is a no-op.
	wantStatus(t, do(t, srv, http.MethodPost, "/api/lights/thermostat-1/turn-on", ""), http.StatusNotFound)
	if d, _ := coord.GetDevice("thermostat-1"); d.On {
		t.Error("turn-on via the light route must not touch a thermostat")
	}

	entries := coord.ListActivity()
	if len(entries) != 2 || entries[0].Action != "turned off" || entries[1].Action != "turned on" {
		t.Errorf("activity = %+v, want turned off then turned on", entries)
	}
}

func TestThermostatActions(t *testing.T) {
	srv, coord := testServer(t, "")

	target := func() float64 {
		t.Helper()
		d, _ := coord.GetDevice("thermostat-1")
		return d.Thermostat.TargetTemperature
	}

	steps := []struct {
		name   string
		path   string
		body   string
		status int
		want   float64
	}{
		{"increase default", "/api/thermostats/thermostat-1/increase-target-heat", "", http.StatusNoContent, 23},
		{"increase amount", "/api/thermostats/thermostat-1/increase-target-heat", `{"amount":2.5}`, http.StatusNoContent, 25.5},
		{"decrease default", "/api/thermostats/thermostat-1/decrease-target-heat", "", http.StatusNoContent, 24.5},
		{"decrease amount", "/api/thermostats/thermostat-1/decrease-target-heat", `{"amount":0.5}`, http.StatusNoContent, 24},
		{"set clamps high", "/api/thermostats/thermostat-1/set-target-heat", `{"targetTemperature":35}`, http.StatusNoContent, device.MaxTargetTemperature},
		{"set clamps low", "/api/thermostats/thermostat-1/set-target-heat", `{"targetTemperature":3}`, http.StatusNoContent, device.MinTargetTemperature},
		{"set without value", "/api/thermostats/thermostat-1/set-target-heat", `{}`, http.StatusBadRequest, device.MinTargetTemperature},
		{"set without body", "/api/thermostats/thermostat-1/set-target-heat", "", http.StatusBadRequest, device.MinTargetTemperature},
		{"bad amount json", "/api/thermostats/thermostat-1/increase-target-heat", `{"amount":"hot"}`, http.StatusBadRequest, device.MinTargetTemperature},
		{"unknown id", "/api/thermostats/nope/increase-target-heat", "", http.StatusNotFound, device.MinTargetTemperature},
		{"light id", "/api/thermostats/light-1/set-target-heat", `{"targetTemperature":20}`, http.StatusNotFound, device.MinTargetTemperature},
	}

	// Steps share one thermostat and run in order.
	for _, st := range steps {
		w := do(t, srv, http.MethodPost, st.path, st.body)
		if w.Code != st.status {
			t.Fatalf("%s: status = %d, want %d; body: %s", st.name, w.Code, st.status, w.Body.String())
		}
		if got := target(); got != st.want {
			t.Fatalf("%s: target = %v, want %v", st.name, got, st.want)
		}
	}

	if entries := coord.ListActivity(); len(entries) != 2 || entries[0].Action != "set to 16.0°C" {
		t.Errorf("activity = %+v, want two set-target entries, newest 16.0", entries)
	}
}

func TestLockAndCameraActions_AutoDisarm(t *testing.T) {
	srv, coord := testServer(t, "")

	w := do(t, srv, http.MethodPost, "/api/security/arm", "")
	wantStatus(t, w, http.StatusOK)

	for _, path := range []string{
		"/api/locks/lock-1/unlock",
		"/api/locks/lock-2/unlock",
		"/api/cameras/camera-1/stop-recording",
	} {
		wantStatus(t, do(t, srv, http.MethodPost, path, ""), http.StatusNoContent)
		if mode := coord.SecurityStatus().Status; mode != store.ModeArmed {
			t.Fatalf("after %s: mode = %q, want armed", path, mode)
		}
	}

	wantStatus(t, do(t, srv, http.MethodPost, "/api/cameras/camera-2/stop-recording", ""), http.StatusNoContent)
	if mode := coord.SecurityStatus().Status; mode != store.ModeDisarmed {
		t.Errorf("after last camera stopped: mode = %q, want disarmed", mode)
	}

	wantStatus(t, do(t, srv, http.MethodPost, "/api/locks/lock-1/lock", ""), http.StatusNoContent)
	wantStatus(t, do(t, srv, http.MethodPost, "/api/cameras/camera-1/start-recording", ""), http.StatusNoContent)
	if d, _ := coord.GetDevice("camera-1"); !d.IsRecording() {
		t.Error("camera-1 should be recording")
	}
	wantStatus(t, do(t, srv, http.MethodPost, "/api/locks/camera-1/lock", ""), http.StatusNotFound)
}

func TestAssignDeviceToRoom(t *testing.T) {
	srv, coord := testServer(t, "")

	wantStatus(t, do(t, srv, http.MethodPost, "/api/rooms/room-kitchen/devices/light-1", ""), http.StatusNoContent)

	living, _ := coord.GetRoom("room-living")
	kitchen, _ := coord.GetRoom("room-kitchen")
	if living.HasDevice("light-1") || !kitchen.HasDevice("light-1") {
		t.Error("light-1 should move from the living room to the kitchen")
	}
	d, _ := coord.GetDevice("light-1")
	if d.RoomID == nil || *d.RoomID != "room-kitchen" {
		t.Errorf("roomId = %v, want room-kitchen", d.RoomID)
	}

	wantStatus(t, do(t, srv, http.MethodPost, "/api/rooms/nope/devices/light-1", ""), http.StatusNotFound)
	wantStatus(t, do(t, srv, http.MethodPost, "/api/rooms/room-kitchen/devices/nope", ""), http.StatusNotFound)

	// Decoding the room proves membership is serialised as an id list.
	room := decode[location.Room](t, do(t, srv, http.MethodGet, "/api/rooms/room-kitchen", ""))
	if !room.HasDevice("light-1") || !room.HasDevice("camera-2") {
		t.Errorf("deviceIds = %v", room.DeviceIDs.Sorted())
	}
}
