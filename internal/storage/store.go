// Package storage is the key/value boundary of the node. Engines differ only in durability; all
// of them iterate keys in ascending byte order and apply a Batch atomically.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnknownEngine is returned by Open for an unsupported engine name.
var ErrUnknownEngine = errors.New("storage: unknown engine")

// Engine names a Store implementation.
type Engine string

const (
	EngineMemory  Engine = "memory"
	EngineLevelDB Engine = "leveldb"
	EngineBolt    Engine = "bolt"
	EnginePebble  Engine = "pebble"
)

// Open creates or opens a store of the given engine at path. The memory engine ignores path.
func Open(engine Engine, path string) (Store, error) {
	switch engine {
	case EngineMemory:
		return NewMemory(), nil
	case EngineLevelDB:
		return OpenLevelDB(path)
	case EngineBolt:
		return OpenBolt(path)
	case EnginePebble:
		return OpenPebble(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}

type batchOp struct {
	key    []byte
	value  []byte
	delete bool
}

// Batch collects writes applied by Store.Write in one atomic step. Keys and values are copied.
type Batch struct {
	ops []batchOp
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

// Put stages key=value.
func (b *Batch) Put(key, value []byte) {
	b.ops = append(b.ops, batchOp{key: clone(key), value: clone(value)})
}

// Delete stages the removal of key.
func (b *Batch) Delete(key []byte) {
	b.ops = append(b.ops, batchOp{key: clone(key), delete: true})
}

// Len returns the number of staged operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Reset empties the batch for reuse.
func (b *Batch) Reset() {
	b.ops = b.ops[:0]
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// prefixLimit returns the smallest key greater than every key starting with prefix, or nil
// when no such key exists.
func prefixLimit(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] < 0xff {
			limit := make([]byte, i+1)
			copy(limit, prefix)
			limit[i]++
			return limit
		}
	}
	return nil
}
