// Package api is the HTTP client for a remote aircraft tracker service.
// Completed calculations and position samples are pushed so the tracker's
// frontend can display them alongside live traffic.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sarscope/sarscope/pkg/core"
)

// Client handles communication with the tracker service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Healthcheck checks if the tracker service is reachable.
func (c *Client) Healthcheck() error {
	resp, err := c.httpClient.Get(c.baseURL + "/healthcheck")
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}

type apiResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	AircraftID   uint   `json:"aircraft_id"`
	PositionID   uint   `json:"position_id"`
	PredictionID uint   `json:"prediction_id"`
}

// PushAircraft registers or updates an airframe on the tracker and returns
// its tracker-side ID.
func (c *Client) PushAircraft(icao24, callsign, aircraftType, originCountry string) (uint, error) {
	resp, err := c.post("/api/aircraft", map[string]interface{}{
		"icao24":         icao24,
		"callsign":       callsign,
		"aircraft_type":  aircraftType,
		"origin_country": originCountry,
	})
	if err != nil {
		return 0, err
	}
	return resp.AircraftID, nil
}

// PushPosition reports one position sample for a tracked aircraft.
func (c *Client) PushPosition(aircraftID uint, flight core.FlightState, onGround bool) (uint, error) {
	resp, err := c.post("/api/positions", map[string]interface{}{
		"aircraft_id":    aircraftID,
		"latitude":       flight.Position.Lat,
		"longitude":      flight.Position.Lon,
		"altitude":       flight.AltitudeFt,
		"ground_speed":   flight.GroundSpeedKt,
		"heading":        flight.HeadingDeg,
		"vertical_speed": flight.VerticalSpeedFt,
		"on_ground":      onGround,
	})
	if err != nil {
		return 0, err
	}
	return resp.PositionID, nil
}

// PushPrediction reports a completed search-area calculation.
func (c *Client) PushPrediction(aircraftID uint, req core.Request, res core.Result, glideTimeMin float64) (uint, error) {
	resp, err := c.post("/api/predictions", map[string]interface{}{
		"aircraft_id": aircraftID,
		"current_position": map[string]interface{}{
			"latitude":  req.Flight.Position.Lat,
			"longitude": req.Flight.Position.Lon,
			"altitude":  req.Flight.AltitudeFt,
		},
		"aircraft_params": map[string]interface{}{
			"ground_speed":   req.Flight.GroundSpeedKt,
			"heading":        req.Flight.HeadingDeg,
			"vertical_speed": req.Flight.VerticalSpeedFt,
		},
		"wind_conditions": map[string]interface{}{
			"speed":     req.Wind.SpeedKt,
			"direction": req.Wind.DirectionDeg,
		},
		"aircraft_type": req.Profile.Name,
		"glide_ratio":   req.Profile.GlideRatio,
		"prediction_results": map[string]interface{}{
			"landingPosition":   []float64{res.Area.Center.Lat, res.Area.Center.Lon},
			"glideDistance":     res.Area.GlideDistanceNm,
			"glideTime":         glideTimeMin,
			"uncertaintyRadius": res.Area.RadiusNm,
		},
	})
	if err != nil {
		return 0, err
	}
	return resp.PredictionID, nil
}

func (c *Client) post(path string, payload map[string]interface{}) (apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return apiResponse{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apiResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apiResponse{}, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return apiResponse{}, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK || !parsed.Success {
		if parsed.Error != "" {
			return apiResponse{}, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, parsed.Error)
		}
		return apiResponse{}, fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}
	return parsed, nil
}
