// Package cache provides a bounded in-memory store for calculation
// results with TTL expiration.
//
// Results are keyed by scenario ID plus submission timestamp, so
// repeated runs of the same scenario coexist until evicted. Key
// features:
//   - Most-recent-wins lookup by scenario ID for result retrieval
//   - Configurable TTL (default 1 hour) and entry-count bound
//   - Least-recently-used eviction once the bound is reached
//   - Safe for concurrent access from calculation workers
//
// The cache is designed for interactive workflows where a scenario is
// recalculated and re-fetched several times while it is being tuned.
package cache
