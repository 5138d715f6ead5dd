// Package blockchain keeps the block tree as a forest of segments indexed by nested sets.
//
// A segment is a maximal run of blocks on one branch. Forking at a block that is not the last of
// its segment splits the segment in two, so historical linkage between blocks never changes; only
// segment membership and the nested-set numbering do. Ancestry between segments is then an
// interval containment test.
//
// All state lives in versioned maps owned by the Manager. A Mutation stages its writes in a new
// version and applies it under the manager's write lock, so readers only ever see a fully
// renumbered forest.
package blockchain

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/pkg/versionedmap"
)

const (
	committedVersion = 0
	latestVersion    = math.MaxInt
)

// Manager owns the segment forest.
type Manager struct {
	// writeMu serializes mutations. mu guards applying a mutation against readers.
	writeMu sync.Mutex
	mu      sync.RWMutex

	logger    *zap.Logger
	metrics   Metrics
	persister Persister

	blocks          *versionedmap.Map[BlockID, Block]
	byHash          *versionedmap.Map[chainhash.Hash, BlockID]
	heights         *versionedmap.Map[int64, []BlockID]
	children        *versionedmap.Map[BlockID, []BlockID]
	segments        *versionedmap.Map[SegmentID, Segment]
	segmentChildren *versionedmap.Map[SegmentID, []SegmentID]

	nextBlockID   BlockID
	nextSegmentID SegmentID
}

// NewManager returns an empty forest. persister may be nil for a purely in-memory forest.
func NewManager(logger *zap.Logger, metrics Metrics, persister Persister) *Manager {
	return &Manager{
		logger:          logger.Named("blockchain"),
		metrics:         metrics,
		persister:       persister,
		blocks:          versionedmap.New[BlockID, Block](),
		byHash:          versionedmap.New[chainhash.Hash, BlockID](),
		heights:         versionedmap.New[int64, []BlockID](),
		children:        versionedmap.New[BlockID, []BlockID](),
		segments:        versionedmap.New[SegmentID, Segment](),
		segmentChildren: versionedmap.New[SegmentID, []SegmentID](),
		nextBlockID:     1,
		nextSegmentID:   1,
	}
}

type layer interface {
	PushVersion() int
	PopVersion() error
	ApplyVersion() error
	Clear()
}

func (m *Manager) layers() []layer {
	return []layer{m.blocks, m.byHash, m.heights, m.children, m.segments, m.segmentChildren}
}

// Load replaces the in-memory forest with the persisted one. Indexes by hash, height and parent
// are rebuilt from the block records.
func (m *Manager) Load() error {
	if m.persister == nil {
		return nil
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	state, err := m.persister.Load()
	if err != nil {
		return fmt.Errorf("load forest: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.layers() {
		l.Clear()
	}

	blocks := slices.Clone(state.Blocks)
	slices.SortFunc(blocks, func(a, b Block) int { return compareIDs(a.ID, b.ID) })
	for _, b := range blocks {
		m.putBlock(b)
	}

	segments := slices.Clone(state.Segments)
	slices.SortFunc(segments, func(a, b Segment) int { return compareIDs(a.ID, b.ID) })
	roots := 0
	for _, s := range segments {
		m.segments.Put(s.ID, s)
		if s.ParentID == 0 {
			roots++
			continue
		}
		siblings, _ := m.segmentChildren.Get(s.ParentID)
		m.segmentChildren.Put(s.ParentID, appendCopy(siblings, s.ID))
	}
	if len(segments) > 0 && roots != 1 {
		return fmt.Errorf("load forest: %w: %d root segments", ErrCorruptForest, roots)
	}

	m.nextBlockID = max(state.NextBlockID, 1)
	m.nextSegmentID = max(state.NextSegmentID, 1)
	for _, b := range blocks {
		m.nextBlockID = max(m.nextBlockID, b.ID+1)
	}
	for _, s := range segments {
		m.nextSegmentID = max(m.nextSegmentID, s.ID+1)
	}

	m.logger.Info("forest loaded", zap.Int("blocks", len(blocks)), zap.Int("segments", len(segments)))
	return nil
}

// putBlock writes b and its hash, height and parent index entries into the top version.
func (m *Manager) putBlock(b Block) {
	_, exists := m.blocks.Get(b.ID)
	m.blocks.Put(b.ID, b)
	if exists {
		return
	}

	m.byHash.Put(b.Hash, b.ID)
	atHeight, _ := m.heights.Get(b.Height)
	m.heights.Put(b.Height, appendCopy(atHeight, b.ID))

	if b.Height == 0 {
		return
	}
	if prevID, ok := m.byHash.Get(b.PreviousHash); ok {
		siblings, _ := m.children.Get(prevID)
		m.children.Put(prevID, appendCopy(siblings, b.ID))
	}
}

func (m *Manager) committed() view {
	return view{m: m, version: committedVersion}
}

func (m *Manager) latest() view {
	return view{m: m, version: latestVersion}
}

// Block returns the block with id.
func (m *Manager) Block(id BlockID) (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.committed().block(id)
	if !ok {
		return Block{}, fmt.Errorf("%w: id %d", ErrBlockNotFound, id)
	}
	return b, nil
}

// BlockByHash returns the block with hash.
func (m *Manager) BlockByHash(hash chainhash.Hash) (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.committed().blockByHash(hash)
	if !ok {
		return Block{}, fmt.Errorf("%w: hash %s", ErrBlockNotFound, hash)
	}
	return b, nil
}

// BlockIDsAtHeight returns every known block at height across all branches, in insertion order.
func (m *Manager) BlockIDsAtHeight(height int64) []BlockID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.committed().blockIDsAtHeight(height))
}

// BlockAtHeight returns the block at height on the chain ending with segment id.
func (m *Manager) BlockAtHeight(id SegmentID, height int64) (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.committed().blockAtHeight(id, height)
}

// Segment returns the segment with id.
func (m *Manager) Segment(id SegmentID) (Segment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.committed().segment(id)
	if !ok {
		return Segment{}, fmt.Errorf("%w: id %d", ErrSegmentNotFound, id)
	}
	return s, nil
}

// SegmentCount returns the number of segments in the forest.
func (m *Manager) SegmentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	m.committed().visitSegments(func(Segment) bool {
		n++
		return true
	})
	return n
}

// RootSegment returns the segment holding the genesis block.
func (m *Manager) RootSegment() (Segment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.committed().root()
}

// ChildSegments returns the direct children of segment id ordered by id.
func (m *Manager) ChildSegments(id SegmentID) ([]Segment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := m.committed()
	if _, ok := v.segment(id); !ok {
		return nil, fmt.Errorf("%w: id %d", ErrSegmentNotFound, id)
	}
	ids := v.childSegmentIDs(id)
	out := make([]Segment, 0, len(ids))
	for _, childID := range ids {
		child, ok := v.segment(childID)
		if !ok {
			return nil, fmt.Errorf("%w: child %d of segment %d is missing", ErrCorruptForest, childID, id)
		}
		out = append(out, child)
	}
	return out, nil
}

// LeafSegments returns every segment without children ordered by id.
func (m *Manager) LeafSegments() []Segment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Segment
	m.committed().visitSegments(func(s Segment) bool {
		if s.IsLeaf() {
			out = append(out, s)
		}
		return true
	})
	slices.SortFunc(out, func(a, b Segment) int { return compareIDs(a.ID, b.ID) })
	return out
}

// Segments returns every segment ordered by id.
func (m *Manager) Segments() []Segment {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Segment
	m.committed().visitSegments(func(s Segment) bool {
		out = append(out, s)
		return true
	})
	slices.SortFunc(out, func(a, b Segment) int { return compareIDs(a.ID, b.ID) })
	return out
}

// AreSegmentsConnected reports whether a relates to b as rel. A segment is both an ancestor and a
// descendant of itself.
func (m *Manager) AreSegmentsConnected(a, b SegmentID, rel Relationship) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.committed().connected(a, b, rel)
}

// IsBlockConnectedToSegment reports whether the segment of block id relates to segment as rel.
func (m *Manager) IsBlockConnectedToSegment(id BlockID, segment SegmentID, rel Relationship) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := m.committed()
	b, ok := v.block(id)
	if !ok {
		return false, fmt.Errorf("%w: id %d", ErrBlockNotFound, id)
	}
	return v.connected(b.SegmentID, segment, rel)
}

// HeadBlockOfSegment returns the tip with the most chain work among the leaves at or below
// segment id. Equal work resolves to the numerically lowest block hash.
func (m *Manager) HeadBlockOfSegment(id SegmentID) (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.committed().headOfSegment(id)
}

// HeadBlock returns the best tip of the whole forest.
func (m *Manager) HeadBlock() (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := m.committed()
	root, err := v.root()
	if err != nil {
		return Block{}, err
	}
	return v.headOfSegment(root.ID)
}

// HeadBlockWithTransactions returns the best block whose transactions are known.
func (m *Manager) HeadBlockWithTransactions() (Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		best  Block
		found bool
	)
	m.committed().visitBlocks(func(b Block) bool {
		if b.HasTransactions && (!found || better(b, best)) {
			best, found = b, true
		}
		return true
	})
	if !found {
		return Block{}, fmt.Errorf("%w: no block with transactions", ErrBlockNotFound)
	}
	return best, nil
}

// AncestorBlockHashes returns up to count hashes walking back from block id, starting with id.
func (m *Manager) AncestorBlockHashes(id BlockID, count int) ([]chainhash.Hash, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := m.committed()
	b, ok := v.block(id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrBlockNotFound, id)
	}

	hashes := make([]chainhash.Hash, 0, count)
	for len(hashes) < count {
		hashes = append(hashes, b.Hash)
		if b.Height == 0 {
			break
		}
		prev := b.PreviousHash
		if b, ok = v.blockByHash(prev); !ok {
			return nil, fmt.Errorf("%w: parent %s of block %d is missing", ErrCorruptForest, prev, id)
		}
	}
	return hashes, nil
}

// better reports whether a is a better tip than b.
func better(a, b Block) bool {
	switch a.ChainWork.Cmp(&b.ChainWork) {
	case 1:
		return true
	case -1:
		return false
	}
	return hashLess(a.Hash, b.Hash)
}

// hashLess compares hashes as little-endian 256-bit numbers.
func hashLess(a, b chainhash.Hash) bool {
	for i := chainhash.HashSize - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func compareIDs[T ~uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func appendCopy[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}
