// Package model defines the rows exported to the chain index.
package model

import "time"

// BlockStatus describes how much of a block the node has checked.
type BlockStatus string

var (
	// BlockHeader marks a block known by its header only.
	BlockHeader BlockStatus = "header"
	// BlockValidated marks a block whose input scripts passed validation.
	BlockValidated BlockStatus = "validated"
)

// Block is a block placed in the segment forest.
type Block struct {
	Network      Network
	Height       uint64
	Hash         string
	PreviousHash string
	Timestamp    time.Time
	MedianTime   time.Time
	Version      int32
	MerkleRoot   string
	Bits         uint32
	Nonce        uint32
	ChainWork    string
	SegmentID    uint64
	Status       BlockStatus
}

// Segment is a snapshot of one segment of the forest. Later snapshots replace earlier ones.
type Segment struct {
	Network        Network
	ID             uint64
	ParentID       uint64
	NestedSetLeft  int64
	NestedSetRight int64
	MaxHeight      uint64
	BlockCount     uint64
	HeadHash       string
}
