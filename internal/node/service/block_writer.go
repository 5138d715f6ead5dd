package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/utxonode/internal/model"
	"github.com/goodnatureofminers/utxonode/pkg/batcher"
)

type blockWriter struct {
	repo         ClickhouseRepository
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.Block]
}

func newBlockWriter(repo ClickhouseRepository, logger *zap.Logger) *blockWriter {
	w := &blockWriter{
		repo:   repo,
		logger: logger,
	}

	w.blockBatcher = batcher.New[model.Block](
		logger.Named("blockBatcher"),
		w.flush,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherRPS,
	)
	return w
}

func (w *blockWriter) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

func (w *blockWriter) Stop() {
	w.blockBatcher.Stop()
}

func (w *blockWriter) WriteBlock(ctx context.Context, b model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.blockBatcher.Add(ctx, b)
}

func (w *blockWriter) WriteSegments(ctx context.Context, segments []model.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	if err := w.repo.InsertSegments(ctx, segments); err != nil {
		return err
	}
	w.logger.Debug("InsertSegments", zap.Int("count", len(segments)))
	return nil
}

func (w *blockWriter) flush(ctx context.Context, blocks []model.Block) error {
	return w.repo.InsertBlocks(ctx, blocks)
}
