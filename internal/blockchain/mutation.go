package blockchain

import (
	"fmt"
	"slices"
	"time"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

const (
	outcomeGenesis   = "genesis"
	outcomeExtend    = "extend"
	outcomeFork      = "fork"
	outcomeDuplicate = "duplicate"

	medianTimeBlocks = 11
)

// Mutation is exclusive write access to the forest. Obtain one with Manager.Lock and release it
// with Unlock; it must not be used from more than one goroutine.
type Mutation struct {
	m        *Manager
	released bool
}

// Lock blocks until no other mutation is in progress.
func (m *Manager) Lock() *Mutation {
	m.writeMu.Lock()
	return &Mutation{m: m}
}

// Unlock releases the mutation. Calling it twice is a no-op.
func (x *Mutation) Unlock() {
	if x.released {
		return
	}
	x.released = true
	x.m.writeMu.Unlock()
}

// InsertBlock places header in the forest and returns the stored block. Inserting a known hash
// returns the existing block, marking it as having transactions when hasTransactions is set.
func (x *Mutation) InsertBlock(header *wire.BlockHeader, hasTransactions bool) (_ *Block, err error) {
	if x.released {
		return nil, ErrMutationReleased
	}

	m := x.m
	started := time.Now()
	hash := header.BlockHash()
	outcome := outcomeDuplicate
	defer func() {
		m.metrics.ObserveInsert(outcome, err, started)
	}()

	if existing, ok := m.latest().blockByHash(hash); ok {
		if !hasTransactions || existing.HasTransactions {
			return &existing, nil
		}
		existing.HasTransactions = true
		if err := x.stage(func() error {
			m.blocks.Put(existing.ID, existing)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("mark block %s: %w", hash, err)
		}
		return &existing, nil
	}

	var block Block
	if err := x.stage(func() (err error) {
		block, outcome, err = x.insert(header, hash, hasTransactions)
		return err
	}); err != nil {
		return nil, fmt.Errorf("insert block %s: %w", hash, err)
	}

	if outcome == outcomeFork {
		m.logger.Info("segment fork",
			zap.Stringer("hash", hash),
			zap.Int64("height", block.Height),
			zap.Uint64("segment", uint64(block.SegmentID)))
	}
	return &block, nil
}

// Renumber recomputes the nested-set bounds of every segment.
func (x *Mutation) Renumber() error {
	if x.released {
		return ErrMutationReleased
	}
	return x.stage(x.renumber)
}

// stage runs fn in a new version of every map. The version is applied and persisted only when fn
// succeeds; otherwise it is discarded along with any allocated ids.
func (x *Mutation) stage(fn func() error) error {
	m := x.m
	nextBlockID, nextSegmentID := m.nextBlockID, m.nextSegmentID
	for _, l := range m.layers() {
		l.PushVersion()
	}

	rollback := func() {
		for _, l := range m.layers() {
			_ = l.PopVersion()
		}
		m.nextBlockID, m.nextSegmentID = nextBlockID, nextSegmentID
	}

	if err := fn(); err != nil {
		rollback()
		return err
	}

	if m.persister != nil {
		if err := m.persister.Commit(m.stagedState()); err != nil {
			rollback()
			return fmt.Errorf("persist mutation: %w", err)
		}
	}

	m.mu.Lock()
	for _, l := range m.layers() {
		if err := l.ApplyVersion(); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("apply mutation: %w", err)
		}
	}
	m.mu.Unlock()

	if head, err := m.HeadBlock(); err == nil {
		m.metrics.SetHeadHeight(head.Height)
	}
	return nil
}

// stagedState collects the blocks and segments written in the top version.
func (m *Manager) stagedState() State {
	state := State{NextBlockID: m.nextBlockID, NextSegmentID: m.nextSegmentID}
	for _, id := range m.blocks.StagedKeys() {
		if b, ok := m.blocks.Get(id); ok {
			state.Blocks = append(state.Blocks, b)
		}
	}
	for _, id := range m.segments.StagedKeys() {
		if s, ok := m.segments.Get(id); ok {
			state.Segments = append(state.Segments, s)
		}
	}
	slices.SortFunc(state.Blocks, func(a, b Block) int { return compareIDs(a.ID, b.ID) })
	slices.SortFunc(state.Segments, func(a, b Segment) int { return compareIDs(a.ID, b.ID) })
	return state
}

func (x *Mutation) allocateBlockID() BlockID {
	id := x.m.nextBlockID
	x.m.nextBlockID++
	return id
}

func (x *Mutation) allocateSegmentID() SegmentID {
	id := x.m.nextSegmentID
	x.m.nextSegmentID++
	return id
}

func (x *Mutation) insert(header *wire.BlockHeader, hash chainhash.Hash, hasTransactions bool) (Block, string, error) {
	m := x.m
	v := m.latest()

	work, overflow := uint256.FromBig(btcchain.CalcWork(header.Bits))
	if overflow {
		return Block{}, "", fmt.Errorf("work of bits %08x overflows 256 bits", header.Bits)
	}

	block := Block{
		ID:              x.allocateBlockID(),
		Hash:            hash,
		PreviousHash:    header.PrevBlock,
		Header:          *header,
		HasTransactions: hasTransactions,
	}

	if header.PrevBlock == (chainhash.Hash{}) {
		if len(v.blockIDsAtHeight(0)) > 0 {
			return Block{}, "", ErrDuplicateGenesis
		}
		root := Segment{
			ID:          x.allocateSegmentID(),
			BlockCount:  1,
			HeadBlockID: block.ID,
		}
		block.ChainWork = *work
		block.MedianTime = header.Timestamp.Unix()
		block.SegmentID = root.ID

		m.segments.Put(root.ID, root)
		m.putBlock(block)
		if err := x.renumber(); err != nil {
			return Block{}, "", err
		}
		return block, outcomeGenesis, nil
	}

	prev, ok := v.blockByHash(header.PrevBlock)
	if !ok {
		return Block{}, "", fmt.Errorf("%w: %s", ErrOrphanBlock, header.PrevBlock)
	}
	seg, ok := v.segment(prev.SegmentID)
	if !ok {
		return Block{}, "", fmt.Errorf("%w: block %d references missing segment %d", ErrCorruptForest, prev.ID, prev.SegmentID)
	}

	block.Height = prev.Height + 1
	block.ChainWork.Add(&prev.ChainWork, work)
	median, err := v.medianTime(prev, header.Timestamp.Unix())
	if err != nil {
		return Block{}, "", err
	}
	block.MedianTime = median

	if len(v.childBlockIDs(prev.ID)) == 0 {
		if seg.HeadBlockID != prev.ID {
			return Block{}, "", fmt.Errorf("%w: childless block %d is not the last of segment %d", ErrCorruptForest, prev.ID, seg.ID)
		}
		seg.MaxHeight = block.Height
		seg.BlockCount++
		seg.HeadBlockID = block.ID
		block.SegmentID = seg.ID

		m.segments.Put(seg.ID, seg)
		m.putBlock(block)
		return block, outcomeExtend, nil
	}

	if seg.HeadBlockID != prev.ID {
		if err := x.split(seg, prev); err != nil {
			return Block{}, "", err
		}
	}

	leaf := Segment{
		ID:          x.allocateSegmentID(),
		ParentID:    seg.ID,
		MaxHeight:   block.Height,
		BlockCount:  1,
		HeadBlockID: block.ID,
	}
	block.SegmentID = leaf.ID

	m.segments.Put(leaf.ID, leaf)
	siblings, _ := m.segmentChildren.Get(seg.ID)
	m.segmentChildren.Put(seg.ID, appendCopy(siblings, leaf.ID))
	m.putBlock(block)

	if err := x.renumber(); err != nil {
		return Block{}, "", err
	}
	return block, outcomeFork, nil
}

// split truncates seg so that it ends at prev. The blocks above prev move to a new segment that
// takes over the child segments of seg and becomes their parent.
func (x *Mutation) split(seg Segment, prev Block) error {
	m := x.m
	v := m.latest()

	var moved []Block
	for id := seg.HeadBlockID; id != prev.ID; {
		b, ok := v.block(id)
		if !ok || b.SegmentID != seg.ID || b.Height <= prev.Height {
			return fmt.Errorf("%w: segment %d does not reach block %d from its head", ErrCorruptForest, seg.ID, prev.ID)
		}
		moved = append(moved, b)
		parent, ok := v.blockByHash(b.PreviousHash)
		if !ok {
			return fmt.Errorf("%w: parent of block %d is missing", ErrCorruptForest, b.ID)
		}
		id = parent.ID
	}

	refactored := Segment{
		ID:          x.allocateSegmentID(),
		ParentID:    seg.ID,
		MaxHeight:   seg.MaxHeight,
		BlockCount:  int64(len(moved)),
		HeadBlockID: seg.HeadBlockID,
	}
	for _, b := range moved {
		b.SegmentID = refactored.ID
		m.blocks.Put(b.ID, b)
	}

	children := v.childSegmentIDs(seg.ID)
	for _, childID := range children {
		child, ok := v.segment(childID)
		if !ok {
			return fmt.Errorf("%w: child %d of segment %d is missing", ErrCorruptForest, childID, seg.ID)
		}
		child.ParentID = refactored.ID
		m.segments.Put(child.ID, child)
	}
	m.segmentChildren.Put(refactored.ID, children)
	m.segmentChildren.Put(seg.ID, []SegmentID{refactored.ID})

	seg.MaxHeight = prev.Height
	seg.BlockCount -= refactored.BlockCount
	seg.HeadBlockID = prev.ID
	if seg.BlockCount < 1 || seg.MinHeight() > prev.Height {
		return fmt.Errorf("%w: segment %d truncated to %d blocks", ErrCorruptForest, seg.ID, seg.BlockCount)
	}

	m.segments.Put(seg.ID, seg)
	m.segments.Put(refactored.ID, refactored)
	return nil
}

type renumberFrame struct {
	id       SegmentID
	children []SegmentID
	next     int
}

// renumber assigns nested-set bounds by a pre-order walk from the single root. Only segments
// whose bounds change are rewritten.
func (x *Mutation) renumber() error {
	m := x.m
	v := m.latest()
	started := time.Now()

	var (
		roots []SegmentID
		total int
	)
	v.visitSegments(func(s Segment) bool {
		total++
		if s.ParentID == 0 {
			roots = append(roots, s.ID)
		}
		return true
	})
	if len(roots) != 1 {
		return fmt.Errorf("%w: %d root segments", ErrCorruptForest, len(roots))
	}

	type bounds struct{ left, right int64 }
	numbered := make(map[SegmentID]bounds, total)
	counter := int64(1)

	numbered[roots[0]] = bounds{left: counter}
	counter++
	stack := []renumberFrame{{id: roots[0], children: v.childSegmentIDs(roots[0])}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.children) {
			childID := top.children[top.next]
			top.next++
			if _, seen := numbered[childID]; seen {
				return fmt.Errorf("%w: segment %d reached twice", ErrCorruptForest, childID)
			}
			child, ok := v.segment(childID)
			if !ok || child.ParentID != top.id {
				return fmt.Errorf("%w: segment %d is not a child of %d", ErrCorruptForest, childID, top.id)
			}
			numbered[childID] = bounds{left: counter}
			counter++
			stack = append(stack, renumberFrame{id: childID, children: v.childSegmentIDs(childID)})
			continue
		}
		b := numbered[top.id]
		b.right = counter
		counter++
		numbered[top.id] = b
		stack = stack[:len(stack)-1]
	}
	if len(numbered) != total {
		return fmt.Errorf("%w: %d of %d segments reachable from the root", ErrCorruptForest, len(numbered), total)
	}

	for id, b := range numbered {
		s, _ := v.segment(id)
		if s.NestedSetLeft == b.left && s.NestedSetRight == b.right {
			continue
		}
		s.NestedSetLeft, s.NestedSetRight = b.left, b.right
		m.segments.Put(id, s)
	}

	m.metrics.ObserveRenumber(total, started)
	return nil
}

// medianTime returns the median of the timestamp of a new child of prev and those of up to ten
// of its ancestors.
func (v view) medianTime(prev Block, timestamp int64) (int64, error) {
	timestamps := make([]int64, 0, medianTimeBlocks)
	timestamps = append(timestamps, timestamp)

	b := prev
	for len(timestamps) < medianTimeBlocks {
		timestamps = append(timestamps, b.Header.Timestamp.Unix())
		if b.Height == 0 {
			break
		}
		parent, ok := v.blockByHash(b.PreviousHash)
		if !ok {
			return 0, fmt.Errorf("%w: parent of block %d is missing", ErrCorruptForest, b.ID)
		}
		b = parent
	}

	slices.Sort(timestamps)
	return timestamps[len(timestamps)/2], nil
}
