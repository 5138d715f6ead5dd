package storage

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// Pebble is a Store backed by cockroachdb/pebble.
type Pebble struct {
	db *pebble.DB
}

// OpenPebble opens or creates a database directory at path.
func OpenPebble(path string) (*Pebble, error) {
	return openPebble(path, &pebble.Options{})
}

func openPebble(path string, options *pebble.Options) (*Pebble, error) {
	db, err := pebble.Open(path, options)
	if err != nil {
		return nil, fmt.Errorf("open pebble %s: %w", path, err)
	}
	return &Pebble{db: db}, nil
}

func (p *Pebble) Get(key []byte) ([]byte, error) {
	v, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	out := clone(v)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	return out, nil
}

func (p *Pebble) Has(key []byte) (bool, error) {
	_, err := p.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (p *Pebble) Write(b *Batch) error {
	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range b.ops {
		var err error
		if op.delete {
			err = batch.Delete(op.key, nil)
		} else {
			err = batch.Set(op.key, op.value, nil)
		}
		if err != nil {
			return fmt.Errorf("pebble stage: %w", err)
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("pebble write: %w", err)
	}
	return nil
}

func (p *Pebble) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixLimit(prefix),
	})
	if err != nil {
		return fmt.Errorf("pebble iterate: %w", err)
	}

	for valid := iter.First(); valid; valid = iter.Next() {
		if err := fn(iter.Key(), iter.Value()); err != nil {
			_ = iter.Close()
			return err
		}
	}
	if err := iter.Close(); err != nil {
		return fmt.Errorf("pebble iterate: %w", err)
	}
	return nil
}

func (p *Pebble) Close() error {
	return p.db.Close()
}
