package storage

import "time"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is a flat ordered key/value store.
	Store interface {
		// Get returns ErrNotFound when key is absent.
		Get(key []byte) ([]byte, error)
		Has(key []byte) (bool, error)
		// Write applies every operation of b or none of them.
		Write(b *Batch) error
		// Iterate calls fn for each key with prefix in ascending order. An error from fn stops
		// the walk and is returned as is. fn must not retain key or value.
		Iterate(prefix []byte, fn func(key, value []byte) error) error
		Close() error
	}

	StoreMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
