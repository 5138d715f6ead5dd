package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/utxonode/internal/model"
)

const insertSegmentsQuery = `
INSERT INTO utxonode_segments (
	network,
	id,
	parent_id,
	nested_set_left,
	nested_set_right,
	max_height,
	block_count,
	head_hash
) VALUES`

// InsertSegments stores segment snapshots. The table keeps the latest snapshot per id.
func (r *Repository) InsertSegments(ctx context.Context, segments []model.Segment) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_segments", string(firstNetwork(segments)), err, start)
	}()

	if len(segments) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertSegmentsQuery)
	if err != nil {
		return fmt.Errorf("prepare segments batch: %w", err)
	}

	for _, s := range segments {
		if err = batch.Append(
			string(s.Network),
			s.ID,
			s.ParentID,
			s.NestedSetLeft,
			s.NestedSetRight,
			s.MaxHeight,
			s.BlockCount,
			s.HeadHash,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append segment: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert segments: %w", err)
	}
	r.metrics.ObserveRows("insert_segments", string(firstNetwork(segments)), len(segments))
	return nil
}
