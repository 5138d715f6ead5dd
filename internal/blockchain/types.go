package blockchain

import (
	"errors"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/holiman/uint256"

	"github.com/goodnatureofminers/utxonode/internal/upgrade"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

var (
	// ErrOrphanBlock is returned when the previous block of an inserted header is unknown.
	ErrOrphanBlock = errors.New("blockchain: previous block not found")
	// ErrDuplicateGenesis is returned when a second parentless block is inserted.
	ErrDuplicateGenesis = errors.New("blockchain: genesis block already exists")
	// ErrCorruptForest reports a broken segment forest. The current mutation is rolled back.
	ErrCorruptForest = errors.New("blockchain: corrupt segment forest")
	// ErrBlockNotFound is returned by block lookups.
	ErrBlockNotFound = errors.New("blockchain: block not found")
	// ErrSegmentNotFound is returned by segment lookups.
	ErrSegmentNotFound = errors.New("blockchain: segment not found")
	// ErrMutationReleased is returned when a Mutation is used after Unlock.
	ErrMutationReleased = errors.New("blockchain: mutation already released")
)

// BlockID identifies a block. Zero means none.
type BlockID uint64

// SegmentID identifies a segment. Zero means none.
type SegmentID uint64

// Block is a header placed in the segment forest.
type Block struct {
	ID           BlockID
	Hash         chainhash.Hash
	PreviousHash chainhash.Hash
	Header       wire.BlockHeader
	Height       int64
	// ChainWork is the cumulative work up to and including this block.
	ChainWork uint256.Int
	// MedianTime is the median timestamp of the last 11 blocks ending at this one, in unix seconds.
	MedianTime      int64
	SegmentID       SegmentID
	HasTransactions bool
}

// Point returns where this block sits for upgrade activation.
func (b Block) Point() upgrade.Point {
	return upgrade.Point{Height: b.Height, MedianTime: b.MedianTime}
}

// Segment is a maximal run of blocks on one branch.
type Segment struct {
	ID       SegmentID
	ParentID SegmentID
	// NestedSetLeft and NestedSetRight bound the interval of every descendant segment.
	NestedSetLeft  int64
	NestedSetRight int64
	MaxHeight      int64
	BlockCount     int64
	// HeadBlockID is the last block of this segment, not of its descendants.
	HeadBlockID BlockID
}

// MinHeight returns the height of the first block of the segment.
func (s Segment) MinHeight() int64 {
	return s.MaxHeight - s.BlockCount + 1
}

// IsLeaf reports whether the segment has no child segments.
func (s Segment) IsLeaf() bool {
	return s.NestedSetRight == s.NestedSetLeft+1
}

// Relationship selects the direction of a connectivity query.
type Relationship int

const (
	// Ancestor asks whether the first segment is an ancestor of the second.
	Ancestor Relationship = iota
	// Descendant asks whether the first segment is a descendant of the second.
	Descendant
	// Either accepts both directions.
	Either
)

func (r Relationship) String() string {
	switch r {
	case Ancestor:
		return "ancestor"
	case Descendant:
		return "descendant"
	case Either:
		return "either"
	default:
		return "unknown"
	}
}

// ParseRelationship maps ancestor, descendant or either to a Relationship.
func ParseRelationship(s string) (Relationship, error) {
	switch s {
	case "ancestor":
		return Ancestor, nil
	case "descendant":
		return Descendant, nil
	case "", "either":
		return Either, nil
	default:
		return 0, errors.New("blockchain: unknown relationship " + s)
	}
}

// State is a set of blocks and segments plus the id counters. Persister.Commit receives only the
// records written by one mutation; Persister.Load returns everything.
type State struct {
	Blocks        []Block
	Segments      []Segment
	NextBlockID   BlockID
	NextSegmentID SegmentID
}

type (
	// Metrics observes the segment model.
	Metrics interface {
		ObserveInsert(outcome string, err error, started time.Time)
		ObserveRenumber(segments int, started time.Time)
		SetHeadHeight(height int64)
	}

	// Persister stores committed mutations.
	Persister interface {
		// Commit writes state atomically.
		Commit(state State) error
		Load() (*State, error)
	}
)
