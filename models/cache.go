package models

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// InvitationCache keeps recently read invitations in memory. Invitations are
// never updated after creation so entries don't need invalidation.
type InvitationCache struct {
	entries    cmap.ConcurrentMap[string, Invitation]
	maxEntries int
}

// NewInvitationCache returns nil when maxEntries <= 0, a nil cache is valid and caches nothing.
func NewInvitationCache(maxEntries int) *InvitationCache {
	if maxEntries <= 0 {
		return nil
	}
	return &InvitationCache{
		entries:    cmap.New[Invitation](),
		maxEntries: maxEntries,
	}
}

func (c *InvitationCache) Get(id string) (Invitation, bool) {
	if c == nil {
		return Invitation{}, false
	}
	return c.entries.Get(id)
}

// Add stores inv unless the cache is full. Once full, new entries are simply
// not cached; reads still fall through to the database.
// Concurrent Adds may overshoot maxEntries by a few entries.
func (c *InvitationCache) Add(inv Invitation) {
	if c == nil || c.entries.Count() >= c.maxEntries {
		return
	}
	c.entries.SetIfAbsent(inv.ID, inv)
}

func (c *InvitationCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Count()
}
