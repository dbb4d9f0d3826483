package cache

import (
	"sync"

	"github.com/sarscope/sarscope/internal/model"
)

// AircraftCache caches aircraft rows by ICAO24 when they are created to
// avoid subsequent db reads. Position pushes arrive for the same airframe
// many times in a row, so the hit rate is high.
type AircraftCache struct {
	m      sync.Mutex
	byICAO map[string]model.Aircraft
}

func NewAircraftCache() *AircraftCache {
	return &AircraftCache{
		byICAO: make(map[string]model.Aircraft),
	}
}

func (c *AircraftCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.byICAO = make(map[string]model.Aircraft)
}

func (c *AircraftCache) Get(icao24 string) (model.Aircraft, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if a, ok := c.byICAO[icao24]; ok {
		return a, true
	}
	return model.Aircraft{}, false
}

func (c *AircraftCache) Add(a model.Aircraft) {
	c.m.Lock()
	defer c.m.Unlock()
	c.byICAO[a.ICAO24] = a
}

func (c *AircraftCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.byICAO)
}
