package cache

import (
	"sync"
	"time"
)

type entry struct {
	Expiry time.Time
	Value  any
}

var lock = sync.Mutex{}
var store = map[string]entry{}

// Probe results are keyed by path, so entries go stale as soon as a file
// is rewritten. Keep the TTL short and sweep regularly.
const ttl = time.Minute * 5

type janitor struct {
	interval time.Duration
}

func (j *janitor) start() {
	ticker := time.NewTicker(j.interval)
	for range ticker.C {
		j.clear()
	}
}

func (j *janitor) clear() {
	lock.Lock()
	defer lock.Unlock()
	for k, v := range store {
		if v.Expiry.Before(time.Now()) {
			delete(store, k)
		}
	}
}

func init() {
	j := &janitor{
		interval: time.Minute * 1,
	}
	go j.start()
}

func Get[T any](key string) *T {
	lock.Lock()
	defer lock.Unlock()
	i, ok := store[key]
	if ok && i.Expiry.After(time.Now()) {
		return i.Value.(*T)
	}
	return nil
}

func Set[T any](key string, value *T) {
	lock.Lock()
	defer lock.Unlock()
	store[key] = entry{
		Expiry: time.Now().Add(ttl),
		Value:  value,
	}
}

func GetOrSet[T any](key string, factory func() (*T, error)) (*T, error) {
	v := Get[T](key)
	if v != nil {
		return v, nil
	}
	v, err := factory()
	if err != nil {
		return nil, err
	}
	Set(key, v)
	return v, nil
}
