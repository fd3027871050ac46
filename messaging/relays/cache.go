package relays

import (
	"time"

	"github.com/nbd-wtf/go-nostr"
	gocache "github.com/patrickmn/go-cache"
)

const (
	seenExpiration      = 10 * time.Minute
	seenCleanupInterval = 30 * time.Minute
)

// seenCache remembers the IDs of recently received events so that copies
// delivered by other relays are dropped.
type seenCache struct {
	cache *gocache.Cache
}

func newSeenCache() *seenCache {
	return &seenCache{cache: gocache.New(seenExpiration, seenCleanupInterval)}
}

// firstSighting returns true only the first time an event ID is offered
// within the expiration window.
func (s *seenCache) firstSighting(e nostr.Event) bool {
	return s.cache.Add(e.ID, struct{}{}, gocache.DefaultExpiration) == nil
}
