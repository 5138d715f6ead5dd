package transport

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Chain interface {
		HeadBlock() (blockchain.Block, error)
		BlockByHash(hash chainhash.Hash) (blockchain.Block, error)
		Segment(id blockchain.SegmentID) (blockchain.Segment, error)
		HeadBlockOfSegment(id blockchain.SegmentID) (blockchain.Block, error)
		AreSegmentsConnected(a, b blockchain.SegmentID, rel blockchain.Relationship) (bool, error)
	}
)
