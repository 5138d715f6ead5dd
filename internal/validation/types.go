package validation

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// PrevOutputSource resolves outputs created outside the block being validated.
	PrevOutputSource interface {
		PreviousOutput(ctx context.Context, outpoint wire.OutPoint) (*wire.TxOut, error)
	}

	// Chain answers ancestry questions for SpentOutputs.
	Chain interface {
		BlockByHash(hash chainhash.Hash) (blockchain.Block, error)
		AreSegmentsConnected(a, b blockchain.SegmentID, rel blockchain.Relationship) (bool, error)
	}

	Metrics interface {
		ObserveBlock(err error, inputs int, started time.Time)
		ObserveSignatureCache(hit bool)
	}
)
