package storage

import (
	"errors"
	"time"
)

// Observed decorates a Store with per-operation metrics.
type Observed struct {
	store   Store
	metrics StoreMetrics
}

// NewObserved wraps store.
func NewObserved(store Store, metrics StoreMetrics) *Observed {
	return &Observed{store: store, metrics: metrics}
}

func (o *Observed) Get(key []byte) (value []byte, err error) {
	started := time.Now()
	defer func() {
		// A miss is a normal answer, not a store failure.
		if errors.Is(err, ErrNotFound) {
			o.metrics.Observe("get", nil, started)
			return
		}
		o.metrics.Observe("get", err, started)
	}()
	return o.store.Get(key)
}

func (o *Observed) Has(key []byte) (ok bool, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("has", err, started)
	}()
	return o.store.Has(key)
}

func (o *Observed) Write(b *Batch) (err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("write", err, started)
	}()
	return o.store.Write(b)
}

func (o *Observed) Iterate(prefix []byte, fn func(key, value []byte) error) (err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("iterate", err, started)
	}()
	return o.store.Iterate(prefix, fn)
}

func (o *Observed) Close() error {
	return o.store.Close()
}
