package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/family-budget-backend/internal/goroutine"
)

// CacheService реализует кеш в памяти с TTL и инвалидацией по префиксу.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService создаёт кеш и запускает фоновую очистку.
func NewCacheService() *CacheService {
	cs := &CacheService{
		cache: make(map[string]*cacheEntry),
	}

	goroutine.SafeGo(cs.cleanup)

	return cs
}

// Get возвращает значение из кеша.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	// Просроченные записи удаляет фоновая очистка
	if time.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.data, true
}

// Set сохраняет значение с TTL.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete удаляет ключ.
func (cs *CacheService) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
}

// InvalidateByPrefix удаляет все ключи с данным префиксом.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(cs.cache, key)
		}
	}
}

// InvalidateFamilyCache сбрасывает кеш семьи. Вызывается после записи
// транзакции, подписки или голоса, чтобы дашборд не отдавал устаревшее.
func (cs *CacheService) InvalidateFamilyCache(familyID uuid.UUID) {
	cs.InvalidateByPrefix("dashboard:" + familyID.String() + ":")
	cs.InvalidateByPrefix("balance:" + familyID.String())
}

// cleanup периодически удаляет просроченные записи.
func (cs *CacheService) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cs.mu.Lock()
		now := time.Now()
		for key, entry := range cs.cache {
			if now.After(entry.expiresAt) {
				delete(cs.cache, key)
			}
		}
		cs.mu.Unlock()
	}
}

// Генераторы ключей кеша.
func DashboardCacheKey(familyID uuid.UUID, userID uuid.UUID, period string) string {
	return "dashboard:" + familyID.String() + ":" + userID.String() + ":" + period
}

func BalanceCacheKey(familyID uuid.UUID) string {
	return "balance:" + familyID.String()
}

// GetOrSet возвращает значение из кеша или вычисляет и сохраняет его.
func (cs *CacheService) GetOrSet(
	key string,
	ttl time.Duration,
	fn func() (interface{}, error),
) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	cs.Set(key, value, ttl)

	return value, nil
}
