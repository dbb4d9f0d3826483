package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sarscope/sarscope/pkg/core"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:5001", "secret123")

	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.baseURL != "http://localhost:5001" {
		t.Errorf("expected baseURL=http://localhost:5001, got %s", c.baseURL)
	}
	if c.apiKey != "secret123" {
		t.Errorf("expected apiKey=secret123, got %s", c.apiKey)
	}
	if c.httpClient == nil {
		t.Error("httpClient is nil")
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:5001/", "secret")
	if c.baseURL != "http://localhost:5001" {
		t.Errorf("expected trailing slash trimmed, got %s", c.baseURL)
	}
}

func TestHealthcheck_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthcheck" {
			t.Errorf("expected path /healthcheck, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "")
	if err := c.Healthcheck(); err != nil {
		t.Errorf("Healthcheck failed: %v", err)
	}
}

func TestHealthcheck_ServerDown(t *testing.T) {
	c := New("http://localhost:59999", "") // unlikely to be listening
	if err := c.Healthcheck(); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestPushAircraft_Success(t *testing.T) {
	var receivedKey string
	var receivedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/aircraft" {
			t.Errorf("expected path /api/aircraft, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		receivedKey = r.Header.Get("X-Api-Key")
		if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"success":     true,
			"aircraft_id": 42,
		})
	}))
	defer server.Close()

	c := New(server.URL, "mysecret")
	id, err := c.PushAircraft("a1b2c3", "UAL123", "B738", "United States")
	if err != nil {
		t.Fatalf("PushAircraft failed: %v", err)
	}
	if id != 42 {
		t.Errorf("expected aircraft_id=42, got %d", id)
	}
	if receivedKey != "mysecret" {
		t.Errorf("expected X-Api-Key=mysecret, got %s", receivedKey)
	}
	if receivedBody["icao24"] != "a1b2c3" {
		t.Errorf("expected icao24=a1b2c3, got %v", receivedBody["icao24"])
	}
	if receivedBody["callsign"] != "UAL123" {
		t.Errorf("expected callsign=UAL123, got %v", receivedBody["callsign"])
	}
}

func TestPushPosition_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/positions" {
			t.Errorf("expected path /api/positions, got %s", r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["latitude"] != 37.7749 {
			t.Errorf("expected latitude=37.7749, got %v", body["latitude"])
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"success":     true,
			"position_id": 7,
		})
	}))
	defer server.Close()

	c := New(server.URL, "")
	id, err := c.PushPosition(42, core.FlightState{
		Position:      core.Position{Lat: 37.7749, Lon: -122.4194},
		AltitudeFt:    30000,
		GroundSpeedKt: 450,
	}, false)
	if err != nil {
		t.Fatalf("PushPosition failed: %v", err)
	}
	if id != 7 {
		t.Errorf("expected position_id=7, got %d", id)
	}
}

func TestPushPrediction_Success(t *testing.T) {
	var receivedBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/predictions" {
			t.Errorf("expected path /api/predictions, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&receivedBody); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"success":       true,
			"prediction_id": 99,
		})
	}))
	defer server.Close()

	req := core.Request{
		Flight: core.FlightState{
			Position:   core.Position{Lat: 37.7749, Lon: -122.4194},
			AltitudeFt: 30000,
		},
		Wind:    core.WindConditions{SpeedKt: 15, DirectionDeg: 270},
		Profile: core.AircraftProfile{Name: "Narrow-Body Airliner (Boeing 737)", GlideRatio: 17},
	}
	res := core.Result{
		Area: core.SearchArea{
			Center:          core.Position{Lat: 37.7749, Lon: -121.30},
			RadiusNm:        168.65,
			GlideDistanceNm: 83.95,
		},
	}

	c := New(server.URL, "")
	id, err := c.PushPrediction(42, req, res, 7.5)
	if err != nil {
		t.Fatalf("PushPrediction failed: %v", err)
	}
	if id != 99 {
		t.Errorf("expected prediction_id=99, got %d", id)
	}

	results, ok := receivedBody["prediction_results"].(map[string]interface{})
	if !ok {
		t.Fatalf("prediction_results missing or wrong type: %v", receivedBody["prediction_results"])
	}
	if results["uncertaintyRadius"] != 168.65 {
		t.Errorf("expected uncertaintyRadius=168.65, got %v", results["uncertaintyRadius"])
	}
	landing, ok := results["landingPosition"].([]interface{})
	if !ok || len(landing) != 2 {
		t.Fatalf("landingPosition missing or wrong shape: %v", results["landingPosition"])
	}
}

func TestPush_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"success": false,
			"error":   "database unavailable",
		})
	}))
	defer server.Close()

	c := New(server.URL, "")
	if _, err := c.PushAircraft("a1b2c3", "", "", ""); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestPush_SuccessFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"success": false,
			"error":   "invalid icao24",
		})
	}))
	defer server.Close()

	c := New(server.URL, "")
	if _, err := c.PushAircraft("zz", "", "", ""); err == nil {
		t.Error("expected error when success=false")
	}
}
