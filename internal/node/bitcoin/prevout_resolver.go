package bitcoin

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goodnatureofminers/utxonode/internal/validation"
)

// PrevOutputResolver implements validation.PrevOutputSource by fetching the funding transaction
// from the upstream node. Recently seen transactions are kept in an LRU.
type PrevOutputResolver struct {
	rpc RPC
	txs *lru.Cache[chainhash.Hash, *wire.MsgTx]
}

// NewPrevOutputResolver creates a resolver caching up to size transactions.
func NewPrevOutputResolver(rpc RPC, size int) (*PrevOutputResolver, error) {
	txs, err := lru.New[chainhash.Hash, *wire.MsgTx](size)
	if err != nil {
		return nil, fmt.Errorf("create transaction cache: %w", err)
	}
	return &PrevOutputResolver{rpc: rpc, txs: txs}, nil
}

// Remember caches the transactions of block so later blocks spending them skip the RPC.
func (r *PrevOutputResolver) Remember(block *wire.MsgBlock) {
	for _, tx := range block.Transactions {
		r.txs.Add(tx.TxHash(), tx)
	}
}

// PreviousOutput returns the output referenced by outpoint.
func (r *PrevOutputResolver) PreviousOutput(ctx context.Context, outpoint wire.OutPoint) (*wire.TxOut, error) {
	tx, ok := r.txs.Get(outpoint.Hash)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.rpc.GetRawTransaction(&outpoint.Hash)
		if err != nil {
			return nil, fmt.Errorf("get transaction %s: %w", outpoint.Hash, err)
		}
		tx = res.MsgTx()
		r.txs.Add(outpoint.Hash, tx)
	}

	if int(outpoint.Index) >= len(tx.TxOut) {
		return nil, fmt.Errorf("%w: %s has %d outputs", validation.ErrMissingPreviousOutput, outpoint, len(tx.TxOut))
	}
	return tx.TxOut[outpoint.Index], nil
}
