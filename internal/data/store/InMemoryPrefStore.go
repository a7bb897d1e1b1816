package store

import (
	"context"
	"sync"
)

type InMemoryPrefStore struct {
	prefLock *sync.RWMutex
	prefMap  map[string]string
}

func InitInMemoryPrefStore() *InMemoryPrefStore {
	return &InMemoryPrefStore{
		prefLock: new(sync.RWMutex),
		prefMap:  make(map[string]string),
	}
}

func (store *InMemoryPrefStore) Get(ctx context.Context, key string) (string, bool, error) {
	store.prefLock.RLock()
	defer store.prefLock.RUnlock()
	value, found := store.prefMap[key]
	return value, found, nil
}

func (store *InMemoryPrefStore) Set(ctx context.Context, key string, value string) error {
	store.prefLock.Lock()
	defer store.prefLock.Unlock()
	store.prefMap[key] = value
	return nil
}

func (store *InMemoryPrefStore) Delete(ctx context.Context, key string) error {
	store.prefLock.Lock()
	defer store.prefLock.Unlock()
	delete(store.prefMap, key)
	return nil
}
