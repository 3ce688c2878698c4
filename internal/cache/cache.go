package cache

import "time"

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Clear()
	// Generation changes on every Clear. A value computed from data read before
	// a Clear should not be stored.
	Generation() uint64
}
