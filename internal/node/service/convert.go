package service

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/internal/model"
	"github.com/goodnatureofminers/utxonode/pkg/safe"
)

func toModelBlock(network model.Network, b blockchain.Block, status model.BlockStatus) (model.Block, error) {
	height, err := safe.Uint64(b.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s height: %w", b.Hash, err)
	}
	return model.Block{
		Network:      network,
		Height:       height,
		Hash:         b.Hash.String(),
		PreviousHash: b.PreviousHash.String(),
		Timestamp:    b.Header.Timestamp.UTC(),
		MedianTime:   time.Unix(b.MedianTime, 0).UTC(),
		Version:      b.Header.Version,
		MerkleRoot:   b.Header.MerkleRoot.String(),
		Bits:         b.Header.Bits,
		Nonce:        b.Header.Nonce,
		ChainWork:    b.ChainWork.ToBig().String(),
		SegmentID:    uint64(b.SegmentID),
		Status:       status,
	}, nil
}

func toModelSegment(network model.Network, s blockchain.Segment, head blockchain.Block) (model.Segment, error) {
	maxHeight, err := safe.Uint64(s.MaxHeight)
	if err != nil {
		return model.Segment{}, fmt.Errorf("segment %d max height: %w", s.ID, err)
	}
	count, err := safe.Uint64(s.BlockCount)
	if err != nil {
		return model.Segment{}, fmt.Errorf("segment %d block count: %w", s.ID, err)
	}
	return model.Segment{
		Network:        network,
		ID:             uint64(s.ID),
		ParentID:       uint64(s.ParentID),
		NestedSetLeft:  s.NestedSetLeft,
		NestedSetRight: s.NestedSetRight,
		MaxHeight:      maxHeight,
		BlockCount:     count,
		HeadHash:       head.Hash.String(),
	}, nil
}
