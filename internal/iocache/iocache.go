// Package iocache is for caching I/O calls and recording compliance history.
package iocache

import (
	"sync"

	"github.com/huangsam/specboard/internal/contract"
)

// CacheStoreManager manages the payload cache and history stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	payload      contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetPayloadStore returns the payload CacheStore.
func (mgr *CacheStoreManager) GetPayloadStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.payload
}

// GetHistoryStore returns the compliance HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
