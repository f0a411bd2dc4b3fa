package cache

import (
	"encoding/json"
	"time"
)

// Entry represents a single cached calculation result with TTL metadata.
type Entry struct {
	// Key is the cache key (scenario ID plus submission timestamp).
	Key string `json:"key"`

	// ScenarioID identifies the scenario the result belongs to.
	ScenarioID string `json:"scenario_id"`

	// Data is the cached result (JSON-serializable).
	Data json.RawMessage `json:"data"`

	// CreatedAt is the timestamp when the entry was created.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the timestamp when the entry expires.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired checks if the cache entry has expired based on current time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the duration since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the duration until the entry expires.
// Returns 0 if already expired.
func (e *Entry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
