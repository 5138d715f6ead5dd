package validation

import (
	"errors"
	"fmt"
	"slices"

	btcchain "github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/goodnatureofminers/utxonode/internal/blockchain"
	"github.com/goodnatureofminers/utxonode/pkg/versionedmap"
)

// SpentOutputs remembers which blocks spent each outpoint. A spend only conflicts with spends
// recorded on the chain the spending block extends, so competing branches may each spend the
// same output once.
//
// Stage opens a version of the index for one block, Commit keeps it and Discard drops it. Stages
// must not overlap.
type SpentOutputs struct {
	chain    Chain
	spenders *versionedmap.Map[wire.OutPoint, []chainhash.Hash]
}

// NewSpentOutputs returns an empty index resolving ancestry through chain.
func NewSpentOutputs(chain Chain) *SpentOutputs {
	return &SpentOutputs{
		chain:    chain,
		spenders: versionedmap.New[wire.OutPoint, []chainhash.Hash](),
	}
}

// Stage checks every input of block against the spends recorded on its chain and stages the
// spends of block. The block must already be in the forest. On error nothing stays staged.
func (s *SpentOutputs) Stage(block *wire.MsgBlock) (err error) {
	hash := block.BlockHash()
	b, err := s.chain.BlockByHash(hash)
	if err != nil {
		return fmt.Errorf("locate block %s: %w", hash, err)
	}

	s.spenders.PushVersion()
	defer func() {
		if err != nil {
			_ = s.spenders.PopVersion()
		}
	}()

	inBlock := mapset.NewThreadUnsafeSet[wire.OutPoint]()
	for _, tx := range block.Transactions {
		if btcchain.IsCoinBaseTx(tx) {
			continue
		}
		for _, in := range tx.TxIn {
			op := in.PreviousOutPoint
			if !inBlock.Add(op) {
				return fmt.Errorf("%w: %s in tx %s", ErrDoubleSpend, op, tx.TxHash())
			}

			spenders, _ := s.spenders.Get(op)
			for _, spender := range spenders {
				if spender == hash {
					continue
				}
				onChain, err := s.precedes(spender, b)
				if err != nil {
					return err
				}
				if onChain {
					return fmt.Errorf("%w: %s spent in block %s", ErrOutputAlreadySpent, op, spender)
				}
			}
			if !slices.Contains(spenders, hash) {
				s.spenders.Put(op, append(slices.Clone(spenders), hash))
			}
		}
	}
	return nil
}

// Commit keeps the staged spends.
func (s *SpentOutputs) Commit() error {
	return s.spenders.ApplyVersion()
}

// Discard drops the staged spends.
func (s *SpentOutputs) Discard() error {
	return s.spenders.PopVersion()
}

// Count returns the number of outpoints with at least one recorded spend.
func (s *SpentOutputs) Count() int {
	return s.spenders.Count()
}

// precedes reports whether the block with hash is a strict ancestor of b. Spenders that left the
// forest never conflict.
func (s *SpentOutputs) precedes(hash chainhash.Hash, b blockchain.Block) (bool, error) {
	spender, err := s.chain.BlockByHash(hash)
	if errors.Is(err, blockchain.ErrBlockNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("locate spender %s: %w", hash, err)
	}
	if spender.SegmentID == b.SegmentID {
		return spender.Height < b.Height, nil
	}
	connected, err := s.chain.AreSegmentsConnected(spender.SegmentID, b.SegmentID, blockchain.Ancestor)
	if err != nil {
		return false, fmt.Errorf("connect segments %d and %d: %w", spender.SegmentID, b.SegmentID, err)
	}
	return connected, nil
}
