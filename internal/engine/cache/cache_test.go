package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := New(10, time.Minute)
	data := json.RawMessage(`{"total":42.5}`)

	key, err := s.Put("scenario-1", data)
	require.NoError(t, err)
	assert.Contains(t, key, "scenario-1_")

	entry, err := s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "scenario-1", entry.ScenarioID)
	assert.Equal(t, data, entry.Data)
	assert.False(t, entry.IsExpired())
	assert.Greater(t, entry.TimeUntilExpiration(), time.Duration(0))
	assert.LessOrEqual(t, entry.Age(), time.Second)

	t.Run("MissingKey", func(t *testing.T) {
		_, err := s.Get("scenario-1_0")
		assert.ErrorIs(t, err, ErrCacheNotFound)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := s.Get("")
		assert.ErrorIs(t, err, ErrInvalidCacheKey)
		_, err = s.Put("", nil)
		assert.ErrorIs(t, err, ErrInvalidCacheKey)
	})
}

func TestStoreLatestWins(t *testing.T) {
	s := New(10, time.Minute)

	first, err := s.Put("scenario-1", json.RawMessage(`{"run":1}`))
	require.NoError(t, err)
	second, err := s.Put("scenario-1", json.RawMessage(`{"run":2}`))
	require.NoError(t, err)

	entry, err := s.Latest("scenario-1")
	require.NoError(t, err)
	assert.Equal(t, second, entry.Key)
	assert.JSONEq(t, `{"run":2}`, string(entry.Data))

	// The older run stays addressable by its own key.
	if first != second {
		older, err := s.Get(first)
		require.NoError(t, err)
		assert.JSONEq(t, `{"run":1}`, string(older.Data))
	}

	_, err = s.Latest("scenario-2")
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestStoreLatestSurvivesEvictionOfNewest(t *testing.T) {
	s := New(2, time.Minute)

	k1, err := s.Put("scenario-1", json.RawMessage(`{"run":1}`))
	require.NoError(t, err)
	k2 := k1
	for k2 == k1 { // keys are timestamped; retry on a same-nanosecond collision
		k2, err = s.Put("scenario-1", json.RawMessage(`{"run":2}`))
		require.NoError(t, err)
	}

	// Touch the older run so the newest becomes least recently used,
	// then force an eviction that removes it.
	_, err = s.Get(k1)
	require.NoError(t, err)
	_, err = s.Put("scenario-2", nil)
	require.NoError(t, err)

	_, err = s.Get(k2)
	require.ErrorIs(t, err, ErrCacheNotFound)

	// The scenario still has a live run, so Latest must resolve to it
	// instead of reporting not found.
	entry, err := s.Latest("scenario-1")
	require.NoError(t, err)
	assert.Equal(t, k1, entry.Key)
}

func TestStoreDeleteRepointsLatest(t *testing.T) {
	s := New(10, time.Minute)

	k1, err := s.Put("scenario-1", json.RawMessage(`{"run":1}`))
	require.NoError(t, err)
	k2 := k1
	for k2 == k1 {
		k2, err = s.Put("scenario-1", json.RawMessage(`{"run":2}`))
		require.NoError(t, err)
	}

	require.NoError(t, s.Delete(k2))
	entry, err := s.Latest("scenario-1")
	require.NoError(t, err)
	assert.Equal(t, k1, entry.Key)

	require.NoError(t, s.Delete(k1))
	_, err = s.Latest("scenario-1")
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestStoreExpiration(t *testing.T) {
	s := New(10, time.Minute)
	key, err := s.Put("scenario-1", nil)
	require.NoError(t, err)

	// Force expiry without sleeping through a real TTL.
	s.mu.Lock()
	s.entries[key].Value.(*Entry).ExpiresAt = time.Now().Add(-time.Second)
	s.mu.Unlock()

	_, err = s.Get(key)
	assert.ErrorIs(t, err, ErrCacheExpired)

	// The expired entry is dropped on access.
	_, err = s.Get(key)
	assert.ErrorIs(t, err, ErrCacheNotFound)
	_, err = s.Latest("scenario-1")
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestStoreEviction(t *testing.T) {
	s := New(3, time.Minute)
	keys := make([]string, 4)
	for i := range keys {
		key, err := s.Put(fmt.Sprintf("scenario-%d", i), nil)
		require.NoError(t, err)
		keys[i] = key
	}

	assert.Equal(t, 3, s.Len())
	_, err := s.Get(keys[0])
	assert.ErrorIs(t, err, ErrCacheNotFound, "oldest entry is evicted first")
	_, err = s.Get(keys[3])
	assert.NoError(t, err)
}

func TestStoreEvictionRespectsRecency(t *testing.T) {
	s := New(2, time.Minute)
	oldKey, err := s.Put("scenario-old", nil)
	require.NoError(t, err)
	midKey, err := s.Put("scenario-mid", nil)
	require.NoError(t, err)

	// Touch the older entry so the middle one becomes least recent.
	_, err = s.Get(oldKey)
	require.NoError(t, err)

	_, err = s.Put("scenario-new", nil)
	require.NoError(t, err)

	_, err = s.Get(midKey)
	assert.ErrorIs(t, err, ErrCacheNotFound)
	_, err = s.Get(oldKey)
	assert.NoError(t, err)
}

func TestStoreDeleteAndClear(t *testing.T) {
	s := New(10, time.Minute)
	key, err := s.Put("scenario-1", nil)
	require.NoError(t, err)

	require.NoError(t, s.Delete(key))
	require.NoError(t, s.Delete(key), "delete is idempotent")
	_, err = s.Get(key)
	assert.ErrorIs(t, err, ErrCacheNotFound)

	_, err = s.Put("scenario-1", nil)
	require.NoError(t, err)
	_, err = s.Put("scenario-2", nil)
	require.NoError(t, err)

	s.Clear()
	assert.Zero(t, s.Len())
	_, err = s.Latest("scenario-2")
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestStoreCleanupExpired(t *testing.T) {
	s := New(10, time.Minute)
	expired, err := s.Put("scenario-1", nil)
	require.NoError(t, err)
	live, err := s.Put("scenario-2", nil)
	require.NoError(t, err)

	s.mu.Lock()
	s.entries[expired].Value.(*Entry).ExpiresAt = time.Now().Add(-time.Second)
	s.mu.Unlock()

	assert.Equal(t, 1, s.CleanupExpired())
	assert.Equal(t, 1, s.Len())
	_, err = s.Get(live)
	assert.NoError(t, err)
}

func TestStoreKeysOrder(t *testing.T) {
	s := New(10, time.Minute)
	a, _ := s.Put("scenario-a", nil)
	b, _ := s.Put("scenario-b", nil)

	_, err := s.Get(a)
	require.NoError(t, err)

	keys := s.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, a, keys[0], "most recently used first")
	assert.Equal(t, b, keys[1])
}

func TestStoreDefaults(t *testing.T) {
	s := New(0, 0)
	assert.Equal(t, DefaultMaxEntries, s.maxEntries)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := New(64, time.Minute)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id := fmt.Sprintf("scenario-%d", w)
			for i := 0; i < 100; i++ {
				key, err := s.Put(id, json.RawMessage(`{}`))
				assert.NoError(t, err)
				_, _ = s.Get(key)
				_, _ = s.Latest(id)
			}
		}(w)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 64)
}
