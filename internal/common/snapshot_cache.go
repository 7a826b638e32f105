package common

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"solo-skies/skyledger/internal/ledger"
)

// FlightCache keeps short-lived flight snapshots for the public read
// endpoints. Mutating handlers invalidate the entry after a
// successful purchase or cancellation, so a hit is never more stale
// than the TTL.
type FlightCache struct {
	cache *cache.Cache
}

func NewFlightCache(defaultExpirationSeconds, cleanUpIntervalSeconds int) *FlightCache {

	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &FlightCache{cache: c}
}

func flightKey(id uint64) string { return fmt.Sprintf("flight:%d", id) }

func (fc *FlightCache) Get(id uint64) (ledger.FlightSnapshot, bool) {
	val, found := fc.cache.Get(flightKey(id))
	if !found {
		return ledger.FlightSnapshot{}, false
	}
	snap, ok := val.(ledger.FlightSnapshot)
	return snap, ok
}

func (fc *FlightCache) Set(snap ledger.FlightSnapshot) {
	fc.cache.Set(flightKey(snap.ID), snap, cache.DefaultExpiration)
}

func (fc *FlightCache) Invalidate(id uint64) {
	fc.cache.Delete(flightKey(id))
}
