package blockchain

import (
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// view reads the forest as seen from one version. Readers use the committed version; a mutation
// reads its own staged writes through the latest one.
type view struct {
	m       *Manager
	version int
}

func (v view) block(id BlockID) (Block, bool) {
	return v.m.blocks.GetAt(id, v.version)
}

func (v view) blockByHash(hash chainhash.Hash) (Block, bool) {
	id, ok := v.m.byHash.GetAt(hash, v.version)
	if !ok {
		return Block{}, false
	}
	return v.block(id)
}

func (v view) blockIDsAtHeight(height int64) []BlockID {
	ids, _ := v.m.heights.GetAt(height, v.version)
	return ids
}

func (v view) childBlockIDs(id BlockID) []BlockID {
	ids, _ := v.m.children.GetAt(id, v.version)
	return ids
}

func (v view) segment(id SegmentID) (Segment, bool) {
	return v.m.segments.GetAt(id, v.version)
}

// childSegmentIDs returns the children of id sorted by id.
func (v view) childSegmentIDs(id SegmentID) []SegmentID {
	ids, _ := v.m.segmentChildren.GetAt(id, v.version)
	ids = slices.Clone(ids)
	slices.Sort(ids)
	return ids
}

func (v view) visitSegments(fn func(Segment) bool) {
	v.m.segments.VisitAt(v.version, func(_ SegmentID, s Segment) bool {
		return fn(s)
	})
}

func (v view) visitBlocks(fn func(Block) bool) {
	v.m.blocks.VisitAt(v.version, func(_ BlockID, b Block) bool {
		return fn(b)
	})
}

func (v view) root() (Segment, error) {
	var (
		root  Segment
		roots int
	)
	v.visitSegments(func(s Segment) bool {
		if s.ParentID == 0 {
			root = s
			roots++
		}
		return true
	})
	switch roots {
	case 0:
		return Segment{}, fmt.Errorf("%w: forest is empty", ErrSegmentNotFound)
	case 1:
		return root, nil
	default:
		return Segment{}, fmt.Errorf("%w: %d root segments", ErrCorruptForest, roots)
	}
}

func (v view) connected(a, b SegmentID, rel Relationship) (bool, error) {
	sa, ok := v.segment(a)
	if !ok {
		return false, fmt.Errorf("%w: id %d", ErrSegmentNotFound, a)
	}
	sb, ok := v.segment(b)
	if !ok {
		return false, fmt.Errorf("%w: id %d", ErrSegmentNotFound, b)
	}
	if sa.NestedSetLeft == 0 || sb.NestedSetLeft == 0 {
		return false, fmt.Errorf("%w: segment without nested-set bounds", ErrCorruptForest)
	}

	ancestor := sa.NestedSetLeft <= sb.NestedSetLeft && sa.NestedSetRight >= sb.NestedSetRight
	descendant := sa.NestedSetLeft >= sb.NestedSetLeft && sa.NestedSetRight <= sb.NestedSetRight
	switch rel {
	case Ancestor:
		return ancestor, nil
	case Descendant:
		return descendant, nil
	default:
		return ancestor || descendant, nil
	}
}

func (v view) headOfSegment(id SegmentID) (Block, error) {
	target, ok := v.segment(id)
	if !ok {
		return Block{}, fmt.Errorf("%w: id %d", ErrSegmentNotFound, id)
	}

	var (
		best    Block
		found   bool
		missing BlockID
	)
	v.visitSegments(func(s Segment) bool {
		if !s.IsLeaf() || s.NestedSetLeft < target.NestedSetLeft || s.NestedSetRight > target.NestedSetRight {
			return true
		}
		tip, ok := v.block(s.HeadBlockID)
		if !ok {
			missing = s.HeadBlockID
			return false
		}
		if !found || better(tip, best) {
			best, found = tip, true
		}
		return true
	})
	if missing != 0 {
		return Block{}, fmt.Errorf("%w: head block %d is missing", ErrCorruptForest, missing)
	}
	if !found {
		return Block{}, fmt.Errorf("%w: no leaf below segment %d", ErrCorruptForest, id)
	}
	return best, nil
}

// blockAtHeight walks from segment id towards the root until a segment covers height.
func (v view) blockAtHeight(id SegmentID, height int64) (Block, error) {
	s, ok := v.segment(id)
	if !ok {
		return Block{}, fmt.Errorf("%w: id %d", ErrSegmentNotFound, id)
	}
	if height < 0 || height > s.MaxHeight {
		return Block{}, fmt.Errorf("%w: height %d above segment %d", ErrBlockNotFound, height, id)
	}

	for height < s.MinHeight() {
		if s.ParentID == 0 {
			return Block{}, fmt.Errorf("%w: root segment starts at height %d", ErrCorruptForest, s.MinHeight())
		}
		if s, ok = v.segment(s.ParentID); !ok {
			return Block{}, fmt.Errorf("%w: parent of segment %d is missing", ErrCorruptForest, id)
		}
	}

	for _, blockID := range v.blockIDsAtHeight(height) {
		b, ok := v.block(blockID)
		if ok && b.SegmentID == s.ID {
			return b, nil
		}
	}
	return Block{}, fmt.Errorf("%w: segment %d has no block at height %d", ErrCorruptForest, s.ID, height)
}
