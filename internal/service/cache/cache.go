package cache

import "time"

// DocumentCache stores serialized analysis documents with TTL. Analyses are
// pure functions of the loaded collection, so cached entries stay valid until
// the collection is replaced; Flush covers that case.
type DocumentCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
	Flush() error
}
