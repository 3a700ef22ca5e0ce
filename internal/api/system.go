package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/nerrad567/homecore/internal/store"
)

// SystemStatus is the response of GET /api/system/status.
type SystemStatus struct {
	Timestamp     string             `json:"timestamp"`
	Version       string             `json:"version"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	Runtime       RuntimeMetrics     `json:"runtime"`
	WebSocket     WSMetrics          `json:"websocket"`
	MQTT          *ConnectionMetrics `json:"mqtt,omitempty"`
	InfluxDB      *ConnectionMetrics `json:"influxdb,omitempty"`
	Entities      EntityMetrics      `json:"entities"`
	Security      store.SecurityMode `json:"security"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// WSMetrics contains WebSocket hub statistics.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// ConnectionMetrics reports whether an outbound sink is connected.
type ConnectionMetrics struct {
	Connected bool `json:"connected"`
}

// EntityMetrics counts the stored entities.
type EntityMetrics struct {
	Devices     int `json:"devices"`
	Rooms       int `json:"rooms"`
	Scenes      int `json:"scenes"`
	Automations int `json:"automations"`
	Activities  int `json:"activities"`
}

// handleSystemStatus returns runtime, connection and store statistics.
// Sinks that are not configured are left out.
func (s *Server) handleSystemStatus(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	st := s.home.Store()
	devices, rooms, scenes, automations := st.Counts()

	status := SystemStatus{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(memStats.Alloc) / 1024 / 1024,
			MemoryTotalMB: float64(memStats.TotalAlloc) / 1024 / 1024,
			NumGC:         memStats.NumGC,
		},
		WebSocket: WSMetrics{
			ConnectedClients: s.hub.ClientCount(),
		},
		Entities: EntityMetrics{
			Devices:     devices,
			Rooms:       rooms,
			Scenes:      scenes,
			Automations: automations,
			Activities:  len(s.home.ListActivity()),
		},
		Security: st.SecurityMode(),
	}

	if s.mqtt != nil {
		status.MQTT = &ConnectionMetrics{Connected: s.mqtt.IsConnected()}
	}
	if s.influx != nil {
		status.InfluxDB = &ConnectionMetrics{Connected: s.influx.IsConnected()}
	}

	writeJSON(w, http.StatusOK, status)
}
