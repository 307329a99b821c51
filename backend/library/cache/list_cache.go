package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/burugo/thing"
)

type localCacheItem struct {
	value     string
	expiresAt time.Time
}

// ListCacheManager caches per-scope list responses (a user's workspaces, a
// workspace's favorites) so list endpoints skip the database on repeat
// reads. Every mutation of a scope invalidates its key. It rides the redis
// cache client when one is configured and falls back to a process-local map
// otherwise.
type ListCacheManager struct {
	cacheClient thing.CacheClient
	expireTime  time.Duration
	mutex       sync.RWMutex
	local       map[string]localCacheItem
}

func NewListCacheManager(expireTime time.Duration) *ListCacheManager {
	if expireTime <= 0 {
		expireTime = 5 * time.Minute
	}

	return &ListCacheManager{
		cacheClient: thing.Cache(),
		expireTime:  expireTime,
		local:       make(map[string]localCacheItem),
	}
}

// WorkspaceListKey scopes a user's workspace list.
func WorkspaceListKey(userID int64) string {
	return fmt.Sprintf("list:workspaces:user:%d", userID)
}

// GroupListKey scopes a user's workspace-group list.
func GroupListKey(userID int64) string {
	return fmt.Sprintf("list:groups:user:%d", userID)
}

// FavoriteListKey scopes a workspace's favorites list.
func FavoriteListKey(workspaceID int64) string {
	return fmt.Sprintf("list:favorites:workspace:%d", workspaceID)
}

// Set stores value under key.
func (m *ListCacheManager) Set(key string, value any) {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		log.Printf("Error marshaling cache entry for %s: %v", key, err)
		return
	}
	m.setRaw(key, string(valueJSON))
}

// Get loads the entry for key into dst. It reports whether dst was filled.
func (m *ListCacheManager) Get(key string, dst any) bool {
	raw, ok := m.getRaw(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("Error unmarshaling cache entry for %s: %v", key, err)
		go m.Invalidate(key)
		return false
	}
	return true
}

// Invalidate drops the entry for key.
func (m *ListCacheManager) Invalidate(key string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cacheClient == nil {
		delete(m.local, key)
		return
	}
	if err := m.cacheClient.Delete(context.Background(), key); err != nil {
		log.Printf("Error deleting cache entry for %s: %v", key, err)
	}
}

// Snapshot captures the current entry for key (including its absence) and
// returns a restore func. Optimistic writers snapshot, patch with Set, and
// call restore when the authoritative write fails.
func (m *ListCacheManager) Snapshot(key string) (restore func()) {
	raw, ok := m.getRaw(key)
	return func() {
		if ok {
			m.setRaw(key, raw)
		} else {
			m.Invalidate(key)
		}
	}
}

func (m *ListCacheManager) setRaw(key string, raw string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.cacheClient == nil {
		m.local[key] = localCacheItem{
			value:     raw,
			expiresAt: time.Now().Add(m.expireTime),
		}
		return
	}
	if err := m.cacheClient.Set(context.Background(), key, raw, m.expireTime); err != nil {
		log.Printf("Error setting cache entry for %s: %v", key, err)
	}
}

func (m *ListCacheManager) getRaw(key string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.cacheClient == nil {
		item, ok := m.local[key]
		if !ok {
			return "", false
		}
		if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
			return "", false
		}
		return item.value, true
	}

	v, err := m.cacheClient.Get(context.Background(), key)
	if err != nil {
		return "", false
	}
	return v, true
}

var globalListCacheManager *ListCacheManager
var listCacheOnce sync.Once

func GetListCacheManager() *ListCacheManager {
	listCacheOnce.Do(func() {
		globalListCacheManager = NewListCacheManager(5 * time.Minute)
	})
	return globalListCacheManager
}
