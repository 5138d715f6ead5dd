package blockchain

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/storage"
)

var (
	blockPrefix   = []byte("b")
	segmentPrefix = []byte("s")
	countersKey   = []byte("m/counters")
)

const (
	blockRecordSize   = wire.MaxBlockHeaderPayload + 8 + 32 + 8 + 8 + 1
	segmentRecordSize = 8 * 6
	countersSize      = 8 * 2
)

// Repository persists the forest in a storage.Store. Blocks and segments are keyed by id; the
// hash, height and parent indexes are rebuilt by Manager.Load.
type Repository struct {
	store storage.Store
}

// NewRepository returns a Persister backed by store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Commit writes state in a single batch.
func (r *Repository) Commit(state State) error {
	batch := storage.NewBatch()
	for _, b := range state.Blocks {
		value, err := encodeBlock(b)
		if err != nil {
			return fmt.Errorf("encode block %d: %w", b.ID, err)
		}
		batch.Put(idKey(blockPrefix, uint64(b.ID)), value)
	}
	for _, s := range state.Segments {
		batch.Put(idKey(segmentPrefix, uint64(s.ID)), encodeSegment(s))
	}

	counters := make([]byte, 0, countersSize)
	counters = binary.BigEndian.AppendUint64(counters, uint64(state.NextBlockID))
	counters = binary.BigEndian.AppendUint64(counters, uint64(state.NextSegmentID))
	batch.Put(countersKey, counters)

	if err := r.store.Write(batch); err != nil {
		return fmt.Errorf("write forest batch: %w", err)
	}
	return nil
}

// Load reads every block and segment.
func (r *Repository) Load() (*State, error) {
	state := &State{}

	err := r.store.Iterate(blockPrefix, func(key, value []byte) error {
		id, err := parseIDKey(key)
		if err != nil {
			return err
		}
		b, err := decodeBlock(value)
		if err != nil {
			return fmt.Errorf("decode block %d: %w", id, err)
		}
		b.ID = BlockID(id)
		state.Blocks = append(state.Blocks, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}

	err = r.store.Iterate(segmentPrefix, func(key, value []byte) error {
		id, err := parseIDKey(key)
		if err != nil {
			return err
		}
		s, err := decodeSegment(value)
		if err != nil {
			return fmt.Errorf("decode segment %d: %w", id, err)
		}
		s.ID = SegmentID(id)
		state.Segments = append(state.Segments, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate segments: %w", err)
	}

	counters, err := r.store.Get(countersKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return state, nil
	case err != nil:
		return nil, fmt.Errorf("get counters: %w", err)
	case len(counters) != countersSize:
		return nil, fmt.Errorf("%w: counters record of %d bytes", ErrCorruptForest, len(counters))
	}
	state.NextBlockID = BlockID(binary.BigEndian.Uint64(counters))
	state.NextSegmentID = SegmentID(binary.BigEndian.Uint64(counters[8:]))
	return state, nil
}

func idKey(prefix []byte, id uint64) []byte {
	key := make([]byte, 0, len(prefix)+8)
	key = append(key, prefix...)
	return binary.BigEndian.AppendUint64(key, id)
}

func parseIDKey(key []byte) (uint64, error) {
	if len(key) != 9 {
		return 0, fmt.Errorf("%w: key %x", ErrCorruptForest, key)
	}
	return binary.BigEndian.Uint64(key[1:]), nil
}

func encodeBlock(b Block) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, blockRecordSize))
	if err := b.Header.Serialize(buf); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	out = binary.BigEndian.AppendUint64(out, uint64(b.Height))
	work := b.ChainWork.Bytes32()
	out = append(out, work[:]...)
	out = binary.BigEndian.AppendUint64(out, uint64(b.MedianTime))
	out = binary.BigEndian.AppendUint64(out, uint64(b.SegmentID))
	if b.HasTransactions {
		return append(out, 1), nil
	}
	return append(out, 0), nil
}

func decodeBlock(data []byte) (Block, error) {
	if len(data) != blockRecordSize {
		return Block{}, fmt.Errorf("%w: block record of %d bytes", ErrCorruptForest, len(data))
	}

	var b Block
	if err := b.Header.Deserialize(bytes.NewReader(data[:wire.MaxBlockHeaderPayload])); err != nil {
		return Block{}, err
	}
	b.Hash = b.Header.BlockHash()
	b.PreviousHash = b.Header.PrevBlock

	rest := data[wire.MaxBlockHeaderPayload:]
	b.Height = int64(binary.BigEndian.Uint64(rest))
	var work [32]byte
	copy(work[:], rest[8:40])
	b.ChainWork.SetBytes32(work[:])
	b.MedianTime = int64(binary.BigEndian.Uint64(rest[40:]))
	b.SegmentID = SegmentID(binary.BigEndian.Uint64(rest[48:]))
	b.HasTransactions = rest[56] == 1
	return b, nil
}

func encodeSegment(s Segment) []byte {
	out := make([]byte, 0, segmentRecordSize)
	out = binary.BigEndian.AppendUint64(out, uint64(s.ParentID))
	out = binary.BigEndian.AppendUint64(out, uint64(s.NestedSetLeft))
	out = binary.BigEndian.AppendUint64(out, uint64(s.NestedSetRight))
	out = binary.BigEndian.AppendUint64(out, uint64(s.MaxHeight))
	out = binary.BigEndian.AppendUint64(out, uint64(s.BlockCount))
	return binary.BigEndian.AppendUint64(out, uint64(s.HeadBlockID))
}

func decodeSegment(data []byte) (Segment, error) {
	if len(data) != segmentRecordSize {
		return Segment{}, fmt.Errorf("%w: segment record of %d bytes", ErrCorruptForest, len(data))
	}
	field := func(i int) uint64 { return binary.BigEndian.Uint64(data[i*8:]) }
	return Segment{
		ParentID:       SegmentID(field(0)),
		NestedSetLeft:  int64(field(1)),
		NestedSetRight: int64(field(2)),
		MaxHeight:      int64(field(3)),
		BlockCount:     int64(field(4)),
		HeadBlockID:    BlockID(field(5)),
	}, nil
}
