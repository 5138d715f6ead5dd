package service

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/utxonode/internal/model"
	"github.com/goodnatureofminers/utxonode/internal/node/bitcoin"
	"github.com/goodnatureofminers/utxonode/internal/upgrade"
	"github.com/goodnatureofminers/utxonode/internal/validation"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		LatestHeight(ctx context.Context) (int64, error)
		HeaderAt(ctx context.Context, height int64) (bitcoin.Header, error)
		Header(ctx context.Context, hash chainhash.Hash) (bitcoin.Header, error)
		Block(ctx context.Context, hash chainhash.Hash) (*wire.MsgBlock, error)
	}
	BlockValidator interface {
		ValidateBlock(ctx context.Context, block *wire.MsgBlock, point upgrade.Point, prevOuts validation.PrevOutputSource) error
	}
	PrevOutputs interface {
		PreviousOutput(ctx context.Context, outpoint wire.OutPoint) (*wire.TxOut, error)
		Remember(block *wire.MsgBlock)
	}
	// SpentIndex rejects spends of outputs already spent on the chain a block extends.
	SpentIndex interface {
		Stage(block *wire.MsgBlock) error
		Commit() error
		Discard() error
	}
	ClickhouseRepository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertSegments(ctx context.Context, segments []model.Segment) error
	}
	FollowerMetrics interface {
		ObserveSync(err error, headers int, started time.Time)
		SetOrphans(n int)
	}
	Health interface {
		SetServing(serving bool)
	}
)
