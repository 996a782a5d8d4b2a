package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/stwms/workforce-portal/internal/api/metrics"
)

// Resource keys for the view cache. Every write operation names the
// resources it invalidates; the read side re-queries on the next miss.
const (
	ResourceTasks       = "tasks"
	ResourceTeamMembers = "team_members"
	ResourceUsers       = "users"
	ResourceTeams       = "teams"
	ResourceAudit       = "audit"
	ResourceStats       = "stats"
)

// ViewCache is the per-process soft cache behind the resource views. Entries
// are scoped to a session so two principals never see each other's reads, and
// they expire on their own even without an explicit invalidation. Cached data
// may be stale between a mutation and its follow-up re-fetch.
type ViewCache struct {
	lru *expirable.LRU[string, any]
}

// NewViewCache creates a cache bounded to maxSize entries with the given TTL.
func NewViewCache(maxSize int, ttl time.Duration) *ViewCache {
	return &ViewCache{lru: expirable.NewLRU[string, any](maxSize, nil, ttl)}
}

func cacheKey(sessionID, resource string) string {
	return sessionID + "/" + resource
}

// Invalidate drops the given resources for one session. Called by every
// write before its reconciling re-fetch.
func (c *ViewCache) Invalidate(sessionID string, resources ...string) {
	for _, r := range resources {
		c.lru.Remove(cacheKey(sessionID, r))
		metrics.CacheInvalidationsTotal.WithLabelValues(r).Inc()
	}
}

// cacheGet returns the typed entry for (session, resource), counting hits and
// misses. A stored value of the wrong type counts as a miss.
func cacheGet[T any](c *ViewCache, sessionID, resource string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.lru.Get(cacheKey(sessionID, resource))
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(resource).Inc()
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(resource).Inc()
		return zero, false
	}
	metrics.CacheHitsTotal.WithLabelValues(resource).Inc()
	return typed, true
}

// cacheSet stores the entry for (session, resource).
func cacheSet[T any](c *ViewCache, sessionID, resource string, value T) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(sessionID, resource), value)
}
