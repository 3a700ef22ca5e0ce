package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nerrad567/homecore/internal/auth"
	"github.com/nerrad567/homecore/internal/home"
	"github.com/nerrad567/homecore/internal/infrastructure/config"
	"github.com/nerrad567/homecore/internal/infrastructure/logging"
	"github.com/nerrad567/homecore/internal/metrics"
	"github.com/nerrad567/homecore/internal/seed"
	"github.com/nerrad567/homecore/internal/store"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

var testNow = time.Date(2026, time.March, 14, 18, 42, 7, 0, time.UTC)

// testServer creates a Server over the default demo home. A non-empty
// secret turns authentication on.
func testServer(t *testing.T, secret string) (*Server, *home.Coordinator) {
	t.Helper()

	st := store.New(0)
	seed.Default().Apply(st)
	coord := home.New(st,
		home.WithClock(func() time.Time { return testNow }),
		home.WithLocation(time.UTC),
	)

	log := logging.NewWithWriter(config.LoggingConfig{Level: "error", Format: "text"}, "test", io.Discard)

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
			CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		},
		WS: config.WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Security: config.SecurityConfig{JWT: config.JWTConfig{Secret: secret}},
		Logger:   log,
		Home:     coord,
		Metrics:  metrics.New(),
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv, coord
}

// do sends one request through the server's router.
func do(t *testing.T, srv *Server, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into a T.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return v
}

// wantStatus fails the test when the response code differs.
func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}

func TestNew_RequiresDeps(t *testing.T) {
	log := logging.NewWithWriter(config.LoggingConfig{}, "test", io.Discard)

	if _, err := New(Deps{Home: home.New(store.New(0))}); err == nil {
		t.Error("New() without logger should fail")
	}
	if _, err := New(Deps{Logger: log}); err == nil {
		t.Error("New() without coordinator should fail")
	}
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/health", "")
	wantStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
	resp := decode[map[string]any](t, w)
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID_Generated(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/health", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestRequestID_PreservesClient(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/health", "", "X-Request-ID", "client-123")
	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Errorf("X-Request-ID = %q, want %q", got, "client-123")
	}
}

func TestCORS(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodOptions, "/api/devices", "", "Origin", "http://localhost:3000")
	wantStatus(t, w, http.StatusNoContent)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("ACAO = %q, want %q", got, "http://localhost:3000")
	}

	w = do(t, srv, http.MethodGet, "/api/health", "", "Origin", "http://evil.example")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("ACAO for disallowed origin = %q, want empty", got)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/nonexistent", "")
	wantStatus(t, w, http.StatusNotFound)

	e := decode[Error](t, w)
	if e.Status != http.StatusNotFound || e.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want status 404 code %q", e, ErrCodeNotFound)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodPatch, "/api/devices/light-1", "{}")
	wantStatus(t, w, http.StatusMethodNotAllowed)
}

func TestBodySizeLimit(t *testing.T) {
	srv, _ := testServer(t, "")

	body := `{"name":"` + strings.Repeat("x", maxRequestBodySize) + `","type":"light"}`
	w := do(t, srv, http.MethodPost, "/api/devices", body)
	wantStatus(t, w, http.StatusBadRequest)
}

func TestAuth(t *testing.T) {
	srv, _ := testServer(t, testSecret)

	valid, err := auth.GenerateToken("panel-kitchen", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	wrongKey, err := auth.GenerateToken("panel-kitchen", "another-secret-that-is-32-characters!!", time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"health is open", "/api/health", "", http.StatusOK},
		{"missing token", "/api/devices", "", http.StatusUnauthorized},
		{"not a bearer", "/api/devices", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"garbage token", "/api/devices", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"wrong key", "/api/devices", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"valid token", "/api/devices", "Bearer " + valid, http.StatusOK},
		{"metrics protected", "/api/metrics", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var headers []string
			if tt.header != "" {
				headers = []string{"Authorization", tt.header}
			}
			w := do(t, srv, http.MethodGet, tt.path, "", headers...)
			wantStatus(t, w, tt.want)
			if tt.want == http.StatusUnauthorized {
				if e := decode[Error](t, w); e.Code != ErrCodeUnauthorized {
					t.Errorf("code = %q, want %q", e.Code, ErrCodeUnauthorized)
				}
			}
		})
	}
}

func TestAuth_OpenWithoutSecret(t *testing.T) {
	srv, _ := testServer(t, "")

	w := do(t, srv, http.MethodGet, "/api/devices", "")
	wantStatus(t, w, http.StatusOK)
}

// ─── Observability ─────────────────────────────────────────────────

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := testServer(t, "")

	// Generate at least one counted request before scraping.
	wantStatus(t, do(t, srv, http.MethodGet, "/api/devices/light-1", ""), http.StatusOK)

	w := do(t, srv, http.MethodGet, "/api/metrics", "")
	wantStatus(t, w, http.StatusOK)

	body := w.Body.String()
	for _, want := range []string{
		"homecore_devices 8",
		"homecore_rooms 3",
		"homecore_scenes 1",
		"homecore_automations 0",
		"homecore_security_armed 0",
		"homecore_websocket_clients 0",
		`homecore_http_requests_total{method="GET"`,
		`status="200"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
	if strings.Contains(body, `route="/api/devices/light-1`) {
		t.Error("route label should hold the pattern, not the concrete path")
	}
}

func TestSystemStatus(t *testing.T) {
	srv, coord := testServer(t, "")
	coord.Arm()

	w := do(t, srv, http.MethodGet, "/api/system/status", "")
	wantStatus(t, w, http.StatusOK)

	status := decode[SystemStatus](t, w)
	if status.Version != "test" {
		t.Errorf("version = %q, want test", status.Version)
	}
	want := EntityMetrics{Devices: 8, Rooms: 3, Scenes: 1, Automations: 0, Activities: 1}
	if status.Entities != want {
		t.Errorf("entities = %+v, want %+v", status.Entities, want)
	}
	if status.Security != store.ModeArmed {
		t.Errorf("security = %q, want armed", status.Security)
	}
	if status.MQTT != nil || status.InfluxDB != nil {
		t.Error("unconfigured sinks should be omitted")
	}
	if status.Runtime.Goroutines == 0 {
		t.Error("goroutines should be reported")
	}
}

type fakeConn bool

func (f fakeConn) IsConnected() bool { return bool(f) }

func TestSystemStatus_Sinks(t *testing.T) {
	srv, _ := testServer(t, "")
	srv.mqtt = fakeConn(true)
	srv.influx = fakeConn(false)

	status := decode[SystemStatus](t, do(t, srv, http.MethodGet, "/api/system/status", ""))
	if status.MQTT == nil || !status.MQTT.Connected {
		t.Errorf("mqtt = %+v, want connected", status.MQTT)
	}
	if status.InfluxDB == nil || status.InfluxDB.Connected {
		t.Errorf("influxdb = %+v, want disconnected", status.InfluxDB)
	}
}

func TestHealthCheck(t *testing.T) {
	srv, _ := testServer(t, "")

	if err := srv.HealthCheck(t.Context()); err == nil {
		t.Error("HealthCheck before Start should fail")
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close before Start = %v, want nil", err)
	}
}
