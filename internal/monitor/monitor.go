// Package monitor runs the status monitor: a background goroutine that
// mirrors the most recent calculation into a status file operators can tail
// while a search is coordinated.
package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sarscope/sarscope/internal/session"
)

const defaultInterval = 1000 * time.Millisecond

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Session  *session.Context
	Logger   *slog.Logger
	StateDir string

	// Interval between status refreshes. Zero means one second.
	Interval time.Duration
}

// Service manages status monitoring
type Service struct {
	deps      Dependencies
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// Status is the JSON document written on every refresh.
type Status struct {
	Time            time.Time `json:"time"`
	CenterLatitude  float64   `json:"centerLatitude"`
	CenterLongitude float64   `json:"centerLongitude"`
	RadiusNm        float64   `json:"radiusNm"`
	GlideDistanceNm float64   `json:"glideDistanceNm"`
	FieldPoints     int       `json:"fieldPoints"`
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Interval <= 0 {
		deps.Interval = defaultInterval
	}
	return &Service{
		deps:     deps,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// CurrentStatus snapshots the session slot, or false when no calculation has
// completed yet.
func (s *Service) CurrentStatus() (Status, bool) {
	res := s.deps.Session.Current()
	if res == nil {
		return Status{}, false
	}
	return Status{
		Time:            time.Now().UTC(),
		CenterLatitude:  res.Area.Center.Lat,
		CenterLongitude: res.Area.Center.Lon,
		RadiusNm:        res.Area.RadiusNm,
		GlideDistanceNm: res.Area.GlideDistanceNm,
		FieldPoints:     len(res.Field),
	}, true
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	statusFile, err := os.Create(filepath.Join(s.deps.StateDir, "status.txt"))
	if err != nil {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return fmt.Errorf("creating status file: %w", err)
	}

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
			statusFile.Close()
		}()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor goroutine")

		for {
			select {
			case <-s.stopChan:
				return
			default:
				time.Sleep(s.deps.Interval)

				status, ok := s.CurrentStatus()
				if !ok {
					continue
				}

				statusStr, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					statusStr = []byte(fmt.Sprintf(`{"error": "%s"}`, err))
				}

				statusFile.Truncate(0)
				statusFile.Seek(0, 0)
				statusFile.Write(statusStr)
				statusFile.WriteString("\n")
			}
		}
	}()

	return nil
}

// Stop stops the status monitor
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
