// Package store is the repository layer over the prediction schema. All
// reads and writes go through a Store bound to a live gorm session.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sarscope/sarscope/internal/cache"
	"github.com/sarscope/sarscope/internal/model"
)

const (
	defaultAircraftLimit = 100
	defaultHistoryLimit  = 10
)

type Store struct {
	db       *gorm.DB
	aircraft *cache.AircraftCache
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, aircraft: cache.NewAircraftCache()}
}

// CreateOrUpdateAircraft upserts an airframe keyed by ICAO24. Empty optional
// fields leave the stored values untouched. Repeat calls with no new data
// are served from the cache without touching the database.
func (s *Store) CreateOrUpdateAircraft(icao24, callsign, aircraftType, originCountry string) (model.Aircraft, error) {
	if cached, ok := s.aircraft.Get(icao24); ok {
		unchanged := (callsign == "" || callsign == cached.Callsign) &&
			(aircraftType == "" || aircraftType == cached.AircraftType) &&
			(originCountry == "" || originCountry == cached.OriginCountry)
		if unchanged {
			return cached, nil
		}
	}

	var aircraft model.Aircraft
	err := s.db.Where("icao24 = ?", icao24).First(&aircraft).Error
	switch {
	case err == nil:
		if callsign != "" {
			aircraft.Callsign = callsign
		}
		if aircraftType != "" {
			aircraft.AircraftType = aircraftType
		}
		if originCountry != "" {
			aircraft.OriginCountry = originCountry
		}
		if err := s.db.Save(&aircraft).Error; err != nil {
			return model.Aircraft{}, fmt.Errorf("updating aircraft %s: %w", icao24, err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		aircraft = model.Aircraft{
			ICAO24:        icao24,
			Callsign:      callsign,
			AircraftType:  aircraftType,
			OriginCountry: originCountry,
		}
		if err := s.db.Create(&aircraft).Error; err != nil {
			return model.Aircraft{}, fmt.Errorf("creating aircraft %s: %w", icao24, err)
		}
	default:
		return model.Aircraft{}, fmt.Errorf("looking up aircraft %s: %w", icao24, err)
	}
	s.aircraft.Add(aircraft)
	return aircraft, nil
}

// StorePosition appends one position sample to an aircraft's track.
func (s *Store) StorePosition(pos model.AircraftPosition) (model.AircraftPosition, error) {
	if pos.Time.IsZero() {
		pos.Time = time.Now().UTC()
	}
	if err := s.db.Create(&pos).Error; err != nil {
		return model.AircraftPosition{}, fmt.Errorf("storing position: %w", err)
	}
	return pos, nil
}

// StoreSearchQuery records an operator search and returns the saved row.
func (s *Store) StoreSearchQuery(searchType, searchValue string) (model.SearchQuery, error) {
	query := model.SearchQuery{SearchType: searchType, SearchValue: searchValue}
	if err := s.db.Create(&query).Error; err != nil {
		return model.SearchQuery{}, fmt.Errorf("storing search query: %w", err)
	}
	return query, nil
}

// StoreSearchResult links a query to an aircraft it matched.
func (s *Store) StoreSearchResult(queryID, aircraftID uint) (model.SearchResult, error) {
	result := model.SearchResult{SearchQueryID: queryID, AircraftID: aircraftID}
	if err := s.db.Create(&result).Error; err != nil {
		return model.SearchResult{}, fmt.Errorf("storing search result: %w", err)
	}
	return result, nil
}

// StorePrediction persists a completed search-area calculation.
func (s *Store) StorePrediction(p model.EmergencyPrediction) (model.EmergencyPrediction, error) {
	if err := s.db.Create(&p).Error; err != nil {
		return model.EmergencyPrediction{}, fmt.Errorf("storing prediction: %w", err)
	}
	return p, nil
}

// RecentAircraft returns aircraft ordered by most recent update.
func (s *Store) RecentAircraft(limit int) ([]model.Aircraft, error) {
	if limit <= 0 {
		limit = defaultAircraftLimit
	}
	var aircraft []model.Aircraft
	err := s.db.Order("updated_at DESC").Limit(limit).Find(&aircraft).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent aircraft: %w", err)
	}
	return aircraft, nil
}

// AircraftPositions returns the newest position samples for one aircraft.
func (s *Store) AircraftPositions(aircraftID uint, limit int) ([]model.AircraftPosition, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var positions []model.AircraftPosition
	err := s.db.Where("aircraft_id = ?", aircraftID).
		Order("time DESC").Limit(limit).Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("listing positions for aircraft %d: %w", aircraftID, err)
	}
	return positions, nil
}

// SearchHistory returns the newest operator searches.
func (s *Store) SearchHistory(limit int) ([]model.SearchQuery, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var queries []model.SearchQuery
	err := s.db.Order("created_at DESC").Limit(limit).Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	return queries, nil
}

// PredictionHistory returns the newest predictions.
func (s *Store) PredictionHistory(limit int) ([]model.EmergencyPrediction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	var predictions []model.EmergencyPrediction
	err := s.db.Order("created_at DESC").Limit(limit).Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("listing prediction history: %w", err)
	}
	return predictions, nil
}

// FindAircraftByCallsign matches callsigns by case-insensitive substring.
func (s *Store) FindAircraftByCallsign(callsign string) ([]model.Aircraft, error) {
	return s.findAircraft("callsign", callsign)
}

// FindAircraftByICAO24 matches ICAO24 addresses by case-insensitive substring.
func (s *Store) FindAircraftByICAO24(icao24 string) ([]model.Aircraft, error) {
	return s.findAircraft("icao24", icao24)
}

// FindAircraftByCountry matches origin countries by case-insensitive substring.
func (s *Store) FindAircraftByCountry(country string) ([]model.Aircraft, error) {
	return s.findAircraft("origin_country", country)
}

func (s *Store) findAircraft(column, value string) ([]model.Aircraft, error) {
	var aircraft []model.Aircraft
	err := s.db.Where("LOWER("+column+") LIKE LOWER(?)", "%"+value+"%").
		Find(&aircraft).Error
	if err != nil {
		return nil, fmt.Errorf("searching aircraft by %s: %w", column, err)
	}
	return aircraft, nil
}

// AircraftByID returns one aircraft, or gorm.ErrRecordNotFound.
func (s *Store) AircraftByID(id uint) (model.Aircraft, error) {
	var aircraft model.Aircraft
	if err := s.db.First(&aircraft, id).Error; err != nil {
		return model.Aircraft{}, fmt.Errorf("loading aircraft %d: %w", id, err)
	}
	return aircraft, nil
}
