package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/utxonode/internal/model"
)

const insertBlocksQuery = `
INSERT INTO utxonode_blocks (
	network,
	height,
	hash,
	previous_hash,
	timestamp,
	median_time,
	version,
	merkleroot,
	bits,
	nonce,
	chainwork,
	segment_id,
	status
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_blocks", string(firstNetwork(blocks)), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Network),
			block.Height,
			block.Hash,
			block.PreviousHash,
			block.Timestamp,
			block.MedianTime,
			block.Version,
			block.MerkleRoot,
			block.Bits,
			block.Nonce,
			block.ChainWork,
			block.SegmentID,
			string(block.Status),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	r.metrics.ObserveRows("insert_blocks", string(firstNetwork(blocks)), len(blocks))
	return nil
}

func firstNetwork[T any](items []T) model.Network {
	if len(items) == 0 {
		return ""
	}

	switch v := any(items[0]).(type) {
	case model.Block:
		return v.Network
	case model.Segment:
		return v.Network
	default:
		return ""
	}
}
