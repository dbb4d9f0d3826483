package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarscope/sarscope/internal/model"
)

func TestAircraftCache_New(t *testing.T) {
	cache := NewAircraftCache()

	require.NotNil(t, cache)
	assert.Zero(t, cache.Len())
}

func TestAircraftCache_AddAndGet(t *testing.T) {
	cache := NewAircraftCache()

	cache.Add(model.Aircraft{
		ICAO24:   "a1b2c3",
		Callsign: "UAL123",
	})

	got, ok := cache.Get("a1b2c3")
	require.True(t, ok, "expected to find aircraft a1b2c3")
	assert.Equal(t, "UAL123", got.Callsign)
}

func TestAircraftCache_Get_NotFound(t *testing.T) {
	cache := NewAircraftCache()

	_, ok := cache.Get("zzzzzz")
	assert.False(t, ok)
}

func TestAircraftCache_Reset(t *testing.T) {
	cache := NewAircraftCache()
	cache.Add(model.Aircraft{ICAO24: "a1b2c3"})
	require.Equal(t, 1, cache.Len())

	cache.Reset()
	assert.Zero(t, cache.Len())
	_, ok := cache.Get("a1b2c3")
	assert.False(t, ok)
}

func TestAircraftCache_ConcurrentAccess(t *testing.T) {
	cache := NewAircraftCache()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			a := model.Aircraft{ICAO24: string(rune('a' + n%8))}
			cache.Add(a)
			cache.Get(a.ICAO24)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, cache.Len())
}
